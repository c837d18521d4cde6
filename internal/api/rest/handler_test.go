package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuschain/access-layer/internal/access"
	"github.com/campuschain/access-layer/internal/actions"
	"github.com/campuschain/access-layer/internal/api/middleware"
	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/entity"
	"github.com/campuschain/access-layer/internal/logger"
	"github.com/campuschain/access-layer/internal/mocks"
	"github.com/campuschain/access-layer/internal/policy"
	"github.com/campuschain/access-layer/internal/relayer"
	"github.com/campuschain/access-layer/internal/store/schema"
)

const (
	testPrimary   = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"
	testDelegated = "0x00000000219ab540356cbb839cbe05303d7705fa"
	testAdmin     = "0x220866b1a2219f40e72f5c628b65d54268ca3a9d"
	testTxHash    = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type handlerFixture struct {
	resolver  *mocks.MockActorResolver
	accessSvc *mocks.MockAccessService
	actionSvc *mocks.MockActionService
	store     *mocks.MockStore
	router    *gin.Engine
}

// newHandlerFixture builds the route table with authentication replaced by
// a middleware that injects the given wallet address
func newHandlerFixture(ctrl *gomock.Controller, authenticatedAs string) *handlerFixture {
	f := &handlerFixture{
		resolver:  mocks.NewMockActorResolver(ctrl),
		accessSvc: mocks.NewMockAccessService(ctrl),
		actionSvc: mocks.NewMockActionService(ctrl),
		store:     mocks.NewMockStore(ctrl),
	}

	h := NewHandler(f.resolver, f.accessSvc, f.actionSvc, f.store,
		entity.NewDeriver(nil), policy.NewStaticAdminPolicy([]string{testAdmin}))

	auth := func(c *gin.Context) {
		if authenticatedAs != "" {
			c.Set(middleware.AUTH_ADDRESS_KEY, authenticatedAs)
		}
		c.Next()
	}

	router := gin.New()
	router.GET("/health", h.HealthCheck)
	v1 := router.Group("/api/v1")
	v1.GET("/access/:kind/:id", auth, h.CheckAccess)
	v1.GET("/courses/:slug/:id/progress", auth, h.GetProgress)
	v1.POST("/actions", auth, h.PerformAction)
	v1.GET("/actions/:id", auth, h.GetAction)
	v1.GET("/contests/:id/submissions", h.ListSubmissions)
	v1.POST("/contests/:id/submissions", auth, h.CreateSubmission)
	v1.POST("/contests/:id/votes", auth, h.CastVote)
	v1.DELETE("/contests/:id/votes", auth, h.RemoveVote)
	v1.POST("/admin/enrollments", auth, h.CreateAdminEnrollment)
	f.router = router
	return f
}

func (f *handlerFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func testActor() *domain.Actor {
	delegated := testDelegated
	return &domain.Actor{
		PrimaryAddress:   testPrimary,
		DelegatedAddress: &delegated,
		SponsorReady:     true,
	}
}

func settledHandle(kind domain.ActionKind, entityRef domain.EntityRef) *relayer.Handle {
	return relayer.NewHandle(ulid.Make().String(), testDelegated, entityRef, kind,
		testTxHash, relayer.StateSettled)
}

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, "")

	w := f.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCheckAccessGranted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	expectedRef := domain.EntityRef{Kind: domain.EntityKindCourse, Slug: "intro-101", ID: "crs_1"}
	f.resolver.EXPECT().Resolve(gomock.Any(), testPrimary).Return(testActor(), nil)
	f.accessSvc.EXPECT().CheckAccess(gomock.Any(), expectedRef, gomock.Any()).
		Return(access.Decision{Granted: true, Source: domain.AccessSourceLedger}, nil)

	w := f.do(http.MethodGet, "/api/v1/access/course/crs_1?slug=intro-101", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp AccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Granted)
	assert.Equal(t, "ledger", resp.Source)
	assert.Equal(t, expectedRef, resp.Entity)
}

func TestCheckAccessInvalidKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	w := f.do(http.MethodGet, "/api/v1/access/album/crs_1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckAccessUnresolvedActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	f.resolver.EXPECT().Resolve(gomock.Any(), testPrimary).
		Return(nil, domain.ErrNotAuthenticated)

	w := f.do(http.MethodGet, "/api/v1/access/contest/contest-1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckAccessLedgerDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	f.resolver.EXPECT().Resolve(gomock.Any(), testPrimary).Return(testActor(), nil)
	f.accessSvc.EXPECT().CheckAccess(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(access.Decision{}, domain.ErrLedgerUnavailable)

	w := f.do(http.MethodGet, "/api/v1/access/contest/contest-1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	f.resolver.EXPECT().Resolve(gomock.Any(), testPrimary).Return(testActor(), nil)
	f.accessSvc.EXPECT().
		GetProgress(gomock.Any(), domain.EntityRef{Kind: domain.EntityKindCourse, Slug: "intro-101", ID: "crs_1"}, gomock.Any(), 4).
		Return(domain.Progress{CompletedCount: 2, TotalCount: 4, PerUnit: []bool{true, false, true, false}}, nil)

	w := f.do(http.MethodGet, "/api/v1/courses/intro-101/crs_1/progress?units=4", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.Progress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.CompletedCount)
	assert.Equal(t, []bool{true, false, true, false}, resp.PerUnit)
}

func TestGetProgressRejectsBadUnits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	for _, units := range []string{"", "0", "-3", "256", "abc"} {
		w := f.do(http.MethodGet, "/api/v1/courses/intro-101/crs_1/progress?units="+units, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "units=%q", units)
	}
}

func TestPerformActionEnroll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	entityRef := domain.EntityRef{Kind: domain.EntityKindCourse, Slug: "intro-101", ID: "crs_1"}
	f.resolver.EXPECT().Resolve(gomock.Any(), testPrimary).Return(testActor(), nil)
	f.actionSvc.EXPECT().
		Perform(gomock.Any(), gomock.Any(), actions.Request{Kind: domain.ActionEnroll, Entity: entityRef}).
		Return(settledHandle(domain.ActionEnroll, entityRef), nil)

	w := f.do(http.MethodPost, "/api/v1/actions", ActionRequest{
		Kind:   "enroll",
		Entity: EntityRefRequest{Kind: "course", Slug: "intro-101", ID: "crs_1"},
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp ActionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "settled", resp.Status)
	assert.Equal(t, testTxHash, resp.TxHash)
}

func TestPerformActionRejectsUnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	w := f.do(http.MethodPost, "/api/v1/actions", ActionRequest{
		Kind:   "teleport",
		Entity: EntityRefRequest{Kind: "course", Slug: "intro-101", ID: "crs_1"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPerformActionRejectsSubmitEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	w := f.do(http.MethodPost, "/api/v1/actions", ActionRequest{
		Kind:   "submit_entry",
		Entity: EntityRefRequest{Kind: "contest", ID: "contest-1"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPerformActionConflicts(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"in flight", domain.ErrActionInFlight},
		{"account not ready", domain.ErrAccountNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			f := newHandlerFixture(ctrl, testPrimary)

			f.resolver.EXPECT().Resolve(gomock.Any(), testPrimary).Return(testActor(), nil)
			f.actionSvc.EXPECT().Perform(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, tt.err)

			w := f.do(http.MethodPost, "/api/v1/actions", ActionRequest{
				Kind:   "enroll",
				Entity: EntityRefRequest{Kind: "course", Slug: "intro-101", ID: "crs_1"},
			})
			assert.Equal(t, http.StatusConflict, w.Code)
		})
	}
}

func TestGetAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	entityRef := domain.EntityRef{Kind: domain.EntityKindContest, ID: "contest-1"}
	handle := settledHandle(domain.ActionVote, entityRef)
	f.actionSvc.EXPECT().Handle(handle.ID).Return(handle, true)

	w := f.do(http.MethodGet, "/api/v1/actions/"+handle.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ActionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, handle.ID, resp.ID)
	assert.Equal(t, "vote", resp.Kind)
}

func TestGetActionNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	f.actionSvc.EXPECT().Handle("nope").Return(nil, false)

	w := f.do(http.MethodGet, "/api/v1/actions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCastVoteZeroTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	f.resolver.EXPECT().Resolve(gomock.Any(), testPrimary).Return(testActor(), nil)
	f.actionSvc.EXPECT().Perform(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrIdentifierNotFound)

	w := f.do(http.MethodPost, "/api/v1/contests/contest-1/votes", VoteRequest{
		SubmissionID: ulid.Make().String(),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCastVoteAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	submissionID := ulid.Make().String()
	entityRef := domain.EntityRef{Kind: domain.EntityKindContest, ID: "contest-1"}
	f.resolver.EXPECT().Resolve(gomock.Any(), testPrimary).Return(testActor(), nil)
	f.actionSvc.EXPECT().
		Perform(gomock.Any(), gomock.Any(), actions.Request{
			Kind:         domain.ActionVote,
			Entity:       entityRef,
			SubmissionID: submissionID,
		}).
		Return(settledHandle(domain.ActionVote, entityRef), nil)

	w := f.do(http.MethodPost, "/api/v1/contests/contest-1/votes", VoteRequest{
		SubmissionID: submissionID,
	})
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestRemoveVoteAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	entityRef := domain.EntityRef{Kind: domain.EntityKindContest, ID: "contest-1"}
	f.resolver.EXPECT().Resolve(gomock.Any(), testPrimary).Return(testActor(), nil)
	f.actionSvc.EXPECT().
		Perform(gomock.Any(), gomock.Any(), actions.Request{
			Kind:   domain.ActionRemoveVote,
			Entity: entityRef,
		}).
		Return(settledHandle(domain.ActionRemoveVote, entityRef), nil)

	w := f.do(http.MethodDelete, "/api/v1/contests/contest-1/votes", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestCreateSubmissionAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	entityRef := domain.EntityRef{Kind: domain.EntityKindContest, ID: "contest-1"}
	submission := &schema.Submission{
		ID:            ulid.Make().String(),
		ContestID:     "contest-1",
		AuthorAddress: testDelegated,
		Title:         "Generative study no. 4",
		MetadataURI:   "campus://metadata/0xabc",
	}

	f.resolver.EXPECT().Resolve(gomock.Any(), testPrimary).Return(testActor(), nil)
	f.actionSvc.EXPECT().
		CreateSubmission(gomock.Any(), gomock.Any(), actions.SubmissionInput{
			ContestID: "contest-1",
			Title:     "Generative study no. 4",
		}).
		Return(submission, settledHandle(domain.ActionSubmitEntry, entityRef), nil)

	w := f.do(http.MethodPost, "/api/v1/contests/contest-1/submissions", SubmissionRequest{
		Title: "Generative study no. 4",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp CreateSubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, submission.ID, resp.Submission.ID)
	assert.True(t, resp.Submission.Pending)
	assert.Equal(t, "submit_entry", resp.Action.Kind)
}

func TestCreateSubmissionRequiresTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	w := f.do(http.MethodPost, "/api/v1/contests/contest-1/submissions", SubmissionRequest{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListSubmissionsIsPublic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, "")

	onchain := "0xdeadbeef00000000000000000000000000000000000000000000000000000001"
	f.actionSvc.EXPECT().ListSubmissions(gomock.Any(), "contest-1").Return([]schema.Submission{
		{ID: "a", ContestID: "contest-1", OnchainID: &onchain, Title: "first"},
		{ID: "b", ContestID: "contest-1", Title: "second"},
	}, nil)

	w := f.do(http.MethodGet, "/api/v1/contests/contest-1/submissions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListSubmissionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Submissions, 2)
	assert.False(t, resp.Submissions[0].Pending)
	assert.True(t, resp.Submissions[1].Pending)
}

func TestCreateAdminEnrollment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testAdmin)

	deriver := entity.NewDeriver(nil)
	var created *schema.Enrollment
	f.store.EXPECT().CreateEnrollment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, e *schema.Enrollment) error {
			created = e
			return nil
		})

	w := f.do(http.MethodPost, "/api/v1/admin/enrollments", AdminEnrollmentRequest{
		ActorAddress: "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		CourseSlug:   "intro-101",
		CourseID:     "crs_1",
		Source:       "grant",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NotNil(t, created)
	assert.Equal(t, domain.NormalizeAddress(testPrimary), created.ActorAddress)
	assert.Equal(t, deriver.CourseTokenID("intro-101", "crs_1"), created.CourseTokenID)
	assert.Equal(t, schema.EnrollmentSourceGrant, created.Source)
}

func TestCreateAdminEnrollmentForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testPrimary)

	w := f.do(http.MethodPost, "/api/v1/admin/enrollments", AdminEnrollmentRequest{
		ActorAddress: testPrimary,
		CourseSlug:   "intro-101",
		CourseID:     "crs_1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateAdminEnrollmentRejectsBadSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(ctrl, testAdmin)

	w := f.do(http.MethodPost, "/api/v1/admin/enrollments", AdminEnrollmentRequest{
		ActorAddress: testPrimary,
		CourseSlug:   "intro-101",
		CourseID:     "crs_1",
		Source:       "raffle",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
