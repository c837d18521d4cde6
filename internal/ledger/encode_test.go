package ledger

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuschain/access-layer/internal/domain"
)

func TestEncodeEnroll(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	parsed, err := parseABI()
	require.NoError(t, err)
	expected, err := parsed.Pack("enroll", big.NewInt(42))
	require.NoError(t, err)

	data, err := enc.EncodeEnroll(42)
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestEncodeCompleteUnitTranslatesIndex(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	parsed, err := parseABI()
	require.NoError(t, err)
	expected, err := parsed.Pack("completeModule", big.NewInt(42), uint8(3))
	require.NoError(t, err)

	// application unit 2 is contract unit 3
	data, err := enc.EncodeCompleteUnit(42, 2)
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestEncodeCompleteUnitRejectsOutOfRangeIndex(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	_, err = enc.EncodeCompleteUnit(42, -1)
	assert.Error(t, err)

	_, err = enc.EncodeCompleteUnit(42, 255)
	assert.Error(t, err)
}

func TestEncodeSubmitEntry(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	parsed, err := parseABI()
	require.NoError(t, err)
	expected, err := parsed.Pack("submitEntry", big.NewInt(7), "ipfs://bafy/entry.json")
	require.NoError(t, err)

	data, err := enc.EncodeSubmitEntry(7, "ipfs://bafy/entry.json")
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestEncodeVote(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	id := common.HexToHash("0xdeadbeef00000000000000000000000000000000000000000000000000000001")

	parsed, err := parseABI()
	require.NoError(t, err)
	expected, err := parsed.Pack("vote", [32]byte(id))
	require.NoError(t, err)

	data, err := enc.EncodeVote(domain.SubmissionID(id.Hex()))
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestEncodeVoteRejectsZeroSubmission(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	_, err = enc.EncodeVote(domain.SubmissionID(""))
	assert.ErrorIs(t, err, domain.ErrIdentifierNotFound)

	_, err = enc.EncodeRemoveVote(domain.SubmissionID(common.Hash{}.Hex()))
	assert.ErrorIs(t, err, domain.ErrIdentifierNotFound)
}
