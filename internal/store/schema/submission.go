package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Submission represents the submissions table - one contest entry. The row
// is created before the ledger write with a null OnchainID; reconciliation
// backfills the ledger-assigned id later. User-authored columns (title,
// description, media) are never touched after creation.
type Submission struct {
	// ID is the database primary key, a ULID assigned at creation
	ID string `gorm:"column:id;primaryKey;type:text"`
	// ContestID is the platform's contest identifier
	ContestID string `gorm:"column:contest_id;not null;type:text;index:idx_submissions_contest"`
	// NumericContestID is the derived ledger id of the contest
	NumericContestID uint64 `gorm:"column:numeric_contest_id;not null"`
	// OnchainID is the ledger-assigned bytes32 submission id (0x-prefixed
	// hex); nil until reconciliation resolves it
	OnchainID *string `gorm:"column:onchain_id;type:text;index:idx_submissions_onchain"`
	// AuthorAddress is the submitting actor's execution address, lowercased
	AuthorAddress string `gorm:"column:author_address;not null;type:text;index:idx_submissions_author"`
	// Title is the user-authored entry title
	Title string `gorm:"column:title;not null;type:text"`
	// Description is the user-authored entry description
	Description string `gorm:"column:description;type:text"`
	// Media holds the entry's media descriptors as JSON
	Media datatypes.JSON `gorm:"column:media;type:jsonb"`
	// MetadataURI is the canonical metadata pointer recorded on the ledger
	MetadataURI string `gorm:"column:metadata_uri;not null;type:text"`
	// VoteCount is the denormalized count of current votes
	VoteCount int `gorm:"column:vote_count;not null;default:0"`
	// CreatedAt is the timestamp when the entry was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last modification
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Submission model
func (Submission) TableName() string {
	return "submissions"
}

// Pending reports whether the ledger id is still unresolved
func (s *Submission) Pending() bool {
	return s.OnchainID == nil || *s.OnchainID == ""
}
