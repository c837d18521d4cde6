package rest

import (
	"encoding/json"
	"time"

	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/relayer"
	"github.com/campuschain/access-layer/internal/store/schema"
)

// ActionRequest is the body of POST /api/v1/actions
type ActionRequest struct {
	Kind   string           `json:"kind" binding:"required"`
	Entity EntityRefRequest `json:"entity" binding:"required"`

	// UnitIndex is the 0-based unit index, required for complete_unit
	UnitIndex *int `json:"unit_index,omitempty"`

	// SubmissionID is the database id of the voted submission, required
	// for vote
	SubmissionID string `json:"submission_id,omitempty"`
}

// EntityRefRequest identifies a gated entity in request bodies
type EntityRefRequest struct {
	Kind string `json:"kind" binding:"required"`
	Slug string `json:"slug,omitempty"`
	ID   string `json:"id" binding:"required"`
}

// Ref converts the request form to the domain reference
func (e EntityRefRequest) Ref() domain.EntityRef {
	return domain.EntityRef{
		Kind: domain.EntityKind(e.Kind),
		Slug: e.Slug,
		ID:   e.ID,
	}
}

// SubmissionRequest is the body of POST /api/v1/contests/:id/submissions
type SubmissionRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description,omitempty"`
	Media       json.RawMessage `json:"media,omitempty"`
}

// VoteRequest is the body of POST /api/v1/contests/:id/votes
type VoteRequest struct {
	SubmissionID string `json:"submission_id" binding:"required"`
}

// AdminEnrollmentRequest is the body of POST /api/v1/admin/enrollments
type AdminEnrollmentRequest struct {
	ActorAddress string `json:"actor_address" binding:"required"`
	CourseSlug   string `json:"course_slug" binding:"required"`
	CourseID     string `json:"course_id" binding:"required"`
	Source       string `json:"source,omitempty"`
}

// ActionResponse reports the state of one sponsored action
type ActionResponse struct {
	ID     string           `json:"id"`
	Status string           `json:"status"`
	Kind   string           `json:"kind"`
	Entity domain.EntityRef `json:"entity"`
	TxHash string           `json:"tx_hash,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// NewActionResponse maps a relayer handle to its API representation
func NewActionResponse(h *relayer.Handle) ActionResponse {
	resp := ActionResponse{
		ID:     h.ID,
		Status: string(h.State()),
		Kind:   string(h.Kind),
		Entity: h.Entity,
		TxHash: h.TxHash,
	}
	if err := h.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// AccessResponse is the body of GET /api/v1/access/:kind/:id
type AccessResponse struct {
	Entity  domain.EntityRef `json:"entity"`
	Granted bool             `json:"granted"`
	Source  string           `json:"source"`
}

// SubmissionResponse is the API representation of one contest entry
type SubmissionResponse struct {
	ID          string          `json:"id"`
	ContestID   string          `json:"contest_id"`
	OnchainID   *string         `json:"onchain_id"`
	Pending     bool            `json:"pending"`
	Author      string          `json:"author_address"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Media       json.RawMessage `json:"media,omitempty"`
	MetadataURI string          `json:"metadata_uri"`
	VoteCount   int             `json:"vote_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewSubmissionResponse maps a submission row to its API representation
func NewSubmissionResponse(s *schema.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:          s.ID,
		ContestID:   s.ContestID,
		OnchainID:   s.OnchainID,
		Pending:     s.Pending(),
		Author:      s.AuthorAddress,
		Title:       s.Title,
		Description: s.Description,
		Media:       json.RawMessage(s.Media),
		MetadataURI: s.MetadataURI,
		VoteCount:   s.VoteCount,
		CreatedAt:   s.CreatedAt,
	}
}

// CreateSubmissionResponse is the body of POST /api/v1/contests/:id/submissions
type CreateSubmissionResponse struct {
	Submission SubmissionResponse `json:"submission"`
	Action     ActionResponse     `json:"action"`
}

// ListSubmissionsResponse is the body of GET /api/v1/contests/:id/submissions
type ListSubmissionsResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}
