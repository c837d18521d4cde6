package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuschain/access-layer/internal/access"
	"github.com/campuschain/access-layer/internal/actions"
	"github.com/campuschain/access-layer/internal/api/middleware"
	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/entity"
	"github.com/campuschain/access-layer/internal/policy"
	"github.com/campuschain/access-layer/internal/relayer"
	"github.com/campuschain/access-layer/internal/store/schema"
)

// ActorResolver resolves an authenticated wallet to its actor identity;
// implemented by identity.Resolver
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api.go -package=mocks -mock_names=ActorResolver=MockActorResolver,AccessService=MockAccessService,ActionService=MockActionService,Handler=MockAPIHandler
type ActorResolver interface {
	Resolve(ctx context.Context, primaryAddress string) (*domain.Actor, error)
}

// AccessService answers access and progress queries; implemented by
// access.Service
type AccessService interface {
	CheckAccess(ctx context.Context, ref domain.EntityRef, actor *domain.Actor) (access.Decision, error)
	GetProgress(ctx context.Context, ref domain.EntityRef, actor *domain.Actor, totalUnits int) (domain.Progress, error)
}

// ActionService performs sponsored writes; implemented by actions.Service
type ActionService interface {
	Perform(ctx context.Context, actor *domain.Actor, req actions.Request) (*relayer.Handle, error)
	Handle(id string) (*relayer.Handle, bool)
	CreateSubmission(ctx context.Context, actor *domain.Actor, input actions.SubmissionInput) (*schema.Submission, *relayer.Handle, error)
	ListSubmissions(ctx context.Context, contestID string) ([]schema.Submission, error)
}

// EnrollmentWriter records server-asserted enrollments; implemented by
// store.Store
type EnrollmentWriter interface {
	CreateEnrollment(ctx context.Context, enrollment *schema.Enrollment) error
}

// Handler defines the interface for REST API handlers
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// CheckAccess answers whether the authenticated actor may access an entity
	// GET /api/v1/access/:kind/:id?slug=<slug>
	CheckAccess(c *gin.Context)

	// GetProgress reports per-unit completion for a course
	// GET /api/v1/courses/:slug/:id/progress?units=<total>
	GetProgress(c *gin.Context)

	// PerformAction runs one sponsored gated action
	// POST /api/v1/actions
	PerformAction(c *gin.Context)

	// GetAction reports the state of a previously submitted action
	// GET /api/v1/actions/:id
	GetAction(c *gin.Context)

	// CreateSubmission creates a contest entry and submits its ledger write
	// POST /api/v1/contests/:id/submissions
	CreateSubmission(c *gin.Context)

	// ListSubmissions lists a contest's entries
	// GET /api/v1/contests/:id/submissions
	ListSubmissions(c *gin.Context)

	// CastVote votes for a contest entry
	// POST /api/v1/contests/:id/votes
	CastVote(c *gin.Context)

	// RemoveVote withdraws the actor's current vote in a contest
	// DELETE /api/v1/contests/:id/votes
	RemoveVote(c *gin.Context)

	// CreateAdminEnrollment records a server-asserted enrollment; admin only
	// POST /api/v1/admin/enrollments
	CreateAdminEnrollment(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	resolver    ActorResolver
	accessSvc   AccessService
	actionSvc   ActionService
	enrollments EnrollmentWriter
	deriver     *entity.Deriver
	admins      policy.AdminPolicy
}

// NewHandler creates a new REST API handler
func NewHandler(
	resolver ActorResolver,
	accessSvc AccessService,
	actionSvc ActionService,
	enrollments EnrollmentWriter,
	deriver *entity.Deriver,
	admins policy.AdminPolicy,
) Handler {
	return &handler{
		resolver:    resolver,
		accessSvc:   accessSvc,
		actionSvc:   actionSvc,
		enrollments: enrollments,
		deriver:     deriver,
		admins:      admins,
	}
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// actor resolves the authenticated wallet into its actor identity. Writes
// the error response and returns nil when resolution fails.
func (h *handler) actor(c *gin.Context) *domain.Actor {
	address := middleware.AuthenticatedAddress(c)
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil
	}

	actor, err := h.resolver.Resolve(c.Request.Context(), address)
	if err != nil {
		respondDomainError(c, err)
		return nil
	}
	return actor
}

// CheckAccess answers whether the authenticated actor may access an entity
func (h *handler) CheckAccess(c *gin.Context) {
	ref := domain.EntityRef{
		Kind: domain.EntityKind(c.Param("kind")),
		Slug: c.Query("slug"),
		ID:   c.Param("id"),
	}
	if !ref.Valid() {
		respondBadRequest(c, "Invalid entity reference")
		return
	}

	actor := h.actor(c)
	if actor == nil {
		return
	}

	decision, err := h.accessSvc.CheckAccess(c.Request.Context(), ref, actor)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccessResponse{
		Entity:  ref,
		Granted: decision.Granted,
		Source:  string(decision.Source),
	})
}

// GetProgress reports per-unit completion for a course
func (h *handler) GetProgress(c *gin.Context) {
	ref := domain.EntityRef{
		Kind: domain.EntityKindCourse,
		Slug: c.Param("slug"),
		ID:   c.Param("id"),
	}
	if !ref.Valid() {
		respondBadRequest(c, "Invalid course reference")
		return
	}

	totalUnits, err := strconv.Atoi(c.Query("units"))
	if err != nil || totalUnits <= 0 || totalUnits > 255 {
		respondValidationError(c, "units must be an integer between 1 and 255")
		return
	}

	actor := h.actor(c)
	if actor == nil {
		return
	}

	progress, err := h.accessSvc.GetProgress(c.Request.Context(), ref, actor, totalUnits)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// PerformAction runs one sponsored gated action
func (h *handler) PerformAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	kind := domain.ActionKind(req.Kind)
	if !domain.IsValidActionKind(kind) {
		respondValidationError(c, "unknown action kind: "+req.Kind)
		return
	}
	if kind == domain.ActionSubmitEntry {
		// entries carry a body; they go through the submissions endpoint
		respondValidationError(c, "use POST /api/v1/contests/:id/submissions to submit an entry")
		return
	}

	actor := h.actor(c)
	if actor == nil {
		return
	}

	handle, err := h.actionSvc.Perform(c.Request.Context(), actor, actions.Request{
		Kind:         kind,
		Entity:       req.Entity.Ref(),
		UnitIndex:    req.UnitIndex,
		SubmissionID: req.SubmissionID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, NewActionResponse(handle))
}

// GetAction reports the state of a previously submitted action
func (h *handler) GetAction(c *gin.Context) {
	handle, ok := h.actionSvc.Handle(c.Param("id"))
	if !ok {
		respondNotFound(c, "Action not found")
		return
	}
	c.JSON(http.StatusOK, NewActionResponse(handle))
}

// CreateSubmission creates a contest entry and submits its ledger write
func (h *handler) CreateSubmission(c *gin.Context) {
	contestID := c.Param("id")
	if contestID == "" {
		respondBadRequest(c, "Contest id is required")
		return
	}

	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	actor := h.actor(c)
	if actor == nil {
		return
	}

	submission, handle, err := h.actionSvc.CreateSubmission(c.Request.Context(), actor, actions.SubmissionInput{
		ContestID:   contestID,
		Title:       req.Title,
		Description: req.Description,
		Media:       req.Media,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, CreateSubmissionResponse{
		Submission: NewSubmissionResponse(submission),
		Action:     NewActionResponse(handle),
	})
}

// ListSubmissions lists a contest's entries
func (h *handler) ListSubmissions(c *gin.Context) {
	contestID := c.Param("id")
	if contestID == "" {
		respondBadRequest(c, "Contest id is required")
		return
	}

	submissions, err := h.actionSvc.ListSubmissions(c.Request.Context(), contestID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := ListSubmissionsResponse{
		Submissions: make([]SubmissionResponse, 0, len(submissions)),
	}
	for i := range submissions {
		resp.Submissions = append(resp.Submissions, NewSubmissionResponse(&submissions[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CastVote votes for a contest entry
func (h *handler) CastVote(c *gin.Context) {
	contestID := c.Param("id")
	if contestID == "" {
		respondBadRequest(c, "Contest id is required")
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	actor := h.actor(c)
	if actor == nil {
		return
	}

	handle, err := h.actionSvc.Perform(c.Request.Context(), actor, actions.Request{
		Kind:         domain.ActionVote,
		Entity:       domain.EntityRef{Kind: domain.EntityKindContest, ID: contestID},
		SubmissionID: req.SubmissionID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, NewActionResponse(handle))
}

// RemoveVote withdraws the actor's current vote in a contest
func (h *handler) RemoveVote(c *gin.Context) {
	contestID := c.Param("id")
	if contestID == "" {
		respondBadRequest(c, "Contest id is required")
		return
	}

	actor := h.actor(c)
	if actor == nil {
		return
	}

	handle, err := h.actionSvc.Perform(c.Request.Context(), actor, actions.Request{
		Kind:   domain.ActionRemoveVote,
		Entity: domain.EntityRef{Kind: domain.EntityKindContest, ID: contestID},
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, NewActionResponse(handle))
}

// CreateAdminEnrollment records a server-asserted enrollment; admin only
func (h *handler) CreateAdminEnrollment(c *gin.Context) {
	caller := middleware.AuthenticatedAddress(c)
	if !h.admins.IsAdmin(caller) {
		respondForbidden(c, "Admin rights required")
		return
	}

	var req AdminEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if !domain.IsValidAddress(req.ActorAddress) {
		respondValidationError(c, "actor_address is not a valid address")
		return
	}

	source := schema.EnrollmentSource(req.Source)
	if source == "" {
		source = schema.EnrollmentSourceAdmin
	}
	switch source {
	case schema.EnrollmentSourcePurchase, schema.EnrollmentSourceGrant, schema.EnrollmentSourceAdmin:
	default:
		respondValidationError(c, "unknown enrollment source: "+req.Source)
		return
	}

	enrollment := &schema.Enrollment{
		ActorAddress:  domain.NormalizeAddress(req.ActorAddress),
		CourseTokenID: h.deriver.CourseTokenID(req.CourseSlug, req.CourseID),
		Source:        source,
	}
	if err := h.enrollments.CreateEnrollment(c.Request.Context(), enrollment); err != nil {
		respondInternalError(c, err, "Failed to record enrollment",
			zap.String("actorAddress", enrollment.ActorAddress),
			zap.String("courseSlug", req.CourseSlug),
		)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"actor_address":   enrollment.ActorAddress,
		"course_token_id": enrollment.CourseTokenID,
		"source":          enrollment.Source,
	})
}
