package schema

import "time"

// Vote represents the votes table - one actor's current vote in a contest.
// The unique (voter, contest) index mirrors the ledger's one-vote-per-
// contest invariant; changing a vote replaces the row.
type Vote struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// VoterAddress is the voting actor's execution address, lowercased
	VoterAddress string `gorm:"column:voter_address;not null;type:text;uniqueIndex:idx_votes_voter_contest,priority:1"`
	// ContestID is the platform's contest identifier
	ContestID string `gorm:"column:contest_id;not null;type:text;uniqueIndex:idx_votes_voter_contest,priority:2"`
	// SubmissionID references the voted submission row
	SubmissionID string `gorm:"column:submission_id;not null;type:text;index:idx_votes_submission"`
	// CreatedAt is the timestamp when the vote was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last modification
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Submission *Submission `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Vote model
func (Vote) TableName() string {
	return "votes"
}
