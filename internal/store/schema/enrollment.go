package schema

import "time"

// EnrollmentSource records how a server-asserted enrollment came to exist
type EnrollmentSource string

const (
	// EnrollmentSourcePurchase represents a paid enrollment
	EnrollmentSourcePurchase EnrollmentSource = "purchase"
	// EnrollmentSourceGrant represents a promotional or scholarship grant
	EnrollmentSourceGrant EnrollmentSource = "grant"
	// EnrollmentSourceAdmin represents a manual admin enrollment
	EnrollmentSourceAdmin EnrollmentSource = "admin"
)

// Enrollment represents the enrollments table - the server-asserted access
// record for one actor and one course badge token. It is an independent
// access signal next to the ledger and is never derived from it.
type Enrollment struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ActorAddress is the actor's primary wallet address, lowercased
	ActorAddress string `gorm:"column:actor_address;not null;type:text;uniqueIndex:idx_enrollments_actor_token,priority:1"`
	// CourseTokenID is the derived ledger token id of the course
	CourseTokenID uint64 `gorm:"column:course_token_id;not null;uniqueIndex:idx_enrollments_actor_token,priority:2"`
	// Source records how the enrollment was asserted
	Source EnrollmentSource `gorm:"column:source;not null;type:text"`
	// CreatedAt is the timestamp when the record was asserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last modification
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Enrollment model
func (Enrollment) TableName() string {
	return "enrollments"
}
