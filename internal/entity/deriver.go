package entity

import (
	"fmt"
	"hash/fnv"
)

// Deriver maps human-facing entity keys to the integer identifiers the
// ledger contracts expect. All methods are pure: same inputs always yield
// the same id, and no I/O is performed. Distinct inputs are not guaranteed
// collision-free; the hash space is treated as large enough in practice and
// guarded by a regression corpus in tests.
type Deriver struct {
	// legacy maps "slug:id" to token ids minted before the deterministic
	// scheme existed. Overrides always win over the derived value.
	legacy map[string]uint64
}

// NewDeriver creates a Deriver with the given legacy override table merged
// over the compiled-in defaults. Entries in overrides win on conflict.
func NewDeriver(overrides map[string]uint64) *Deriver {
	legacy := make(map[string]uint64, len(builtinLegacyCourseTokens)+len(overrides))
	for k, v := range builtinLegacyCourseTokens {
		legacy[k] = v
	}
	for k, v := range overrides {
		legacy[k] = v
	}
	return &Deriver{legacy: legacy}
}

// CourseTokenID derives the badge/enrollment token id for a course from its
// slug/id pair. Legacy overrides are consulted first.
func (d *Deriver) CourseTokenID(slug, id string) uint64 {
	key := courseKey(slug, id)
	if tokenID, ok := d.legacy[key]; ok {
		return tokenID
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	// Mask into the positive int range; the ledger stores token ids as
	// uint256 so any positive value fits.
	tokenID := h.Sum64() & 0x7FFFFFFF
	if tokenID == 0 {
		tokenID = 1
	}
	return tokenID
}

// NumericID derives a small positive integer from a free-form string id
// (e.g. a contest UUID) for ledger interfaces that expect integers.
// No collision guarantee.
func (d *Deriver) NumericID(stringID string) uint64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(stringID))
	numericID := uint64(h.Sum32() & 0x7FFFFFFF)
	if numericID == 0 {
		numericID = 1
	}
	return numericID
}

// HasLegacyOverride reports whether a course slug/id pair carries a
// pre-deterministic token id.
func (d *Deriver) HasLegacyOverride(slug, id string) bool {
	_, ok := d.legacy[courseKey(slug, id)]
	return ok
}

func courseKey(slug, id string) string {
	return fmt.Sprintf("%s:%s", slug, id)
}

// builtinLegacyCourseTokens holds the token ids minted by hand before the
// deterministic derivation scheme existed. Keep in sync with the on-chain
// badge collection; new courses must never be added here.
var builtinLegacyCourseTokens = map[string]uint64{
	"intro-101:crs_1":        2,
	"solidity-basics:crs_2":  3,
	"defi-foundations:crs_4": 7,
}
