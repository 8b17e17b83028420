package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"financeflow_backend/internal/auth"
	"financeflow_backend/internal/middleware"
	"financeflow_backend/internal/models"
	"financeflow_backend/internal/services/dto"
	"financeflow_backend/internal/validator"
	"financeflow_backend/pkg/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- fakes ---

type fakeResolver map[string]*auth.Session

func (r fakeResolver) Resolve(ctx context.Context, db *gorm.DB, token string) *auth.Session {
	if s, ok := r[token]; ok {
		cp := *s
		return &cp
	}
	return &auth.Session{State: auth.StateUnauthenticated}
}

var testSessions = fakeResolver{
	"regular-token": {ID: "s1", UserID: "u1", Email: "user@example.com", State: auth.StateRegular},
	"admin-token":   {ID: "s2", UserID: "u2", Email: "admin@example.com", IsAdmin: true, State: auth.StateAdmin},
}

type fakePlanService struct {
	plans     []models.Plan
	gotFilter string
	created   *dto.CreatePlanRequest
	err       error
}

func (s *fakePlanService) CreatePlan(db *gorm.DB, req *dto.CreatePlanRequest) (*models.Plan, error) {
	s.created = req
	plan := &models.Plan{Title: req.Title, Category: models.PlanCategory(req.Category)}
	plan.ID = "new-plan"
	return plan, s.err
}

func (s *fakePlanService) ListPlans(db *gorm.DB, category string) ([]models.Plan, error) {
	s.gotFilter = category
	return s.plans, s.err
}

func (s *fakePlanService) GetPlan(db *gorm.DB, id string) (*models.Plan, error) {
	for i := range s.plans {
		if s.plans[i].ID == id {
			return &s.plans[i], nil
		}
	}
	return nil, apperrors.ErrPlanNotFound
}

func (s *fakePlanService) UpdatePlan(db *gorm.DB, id string, req *dto.UpdatePlanRequest) (*models.Plan, error) {
	return s.GetPlan(db, id)
}

func (s *fakePlanService) DeletePlan(db *gorm.DB, id string) error { return s.err }

type fakeApplicationService struct {
	applied   bool
	gotUserID *string
	updateErr error
}

func (s *fakeApplicationService) ApplyForPlan(db *gorm.DB, planID string, userID *string, req *dto.ApplyRequest) (*models.Application, error) {
	s.applied = true
	s.gotUserID = userID
	return &models.Application{
		ID:            "app-1",
		ApplicantName: req.Name,
		Plan:          models.PlanSnapshot{PlanID: planID},
		Status:        models.ApplicationStatusPending,
		UserID:        userID,
	}, nil
}

func (s *fakeApplicationService) ListApplications(db *gorm.DB) ([]models.Application, error) {
	return []models.Application{{ID: "a2"}, {ID: "a1"}}, nil
}

func (s *fakeApplicationService) ListMyApplications(db *gorm.DB, userID string) ([]models.Application, error) {
	return []models.Application{{ID: "a1", UserID: &userID}}, nil
}

func (s *fakeApplicationService) UpdateApplicationStatus(db *gorm.DB, id string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.Application{ID: id, Status: models.ApplicationStatus(req.Status)}, nil
}

type fakeAuthService struct {
	users      map[string]*models.User
	password   string
	loggedOut  bool
	lastUpdate *dto.ProfileUpdateRequest
}

func newFakeAuthService() *fakeAuthService {
	return &fakeAuthService{
		password: "correct-horse",
		users: map[string]*models.User{
			"user@example.com":  {BaseModel: models.BaseModel{ID: "u1"}, Email: "user@example.com", Name: "Uma"},
			"admin@example.com": {BaseModel: models.BaseModel{ID: "u2"}, Email: "admin@example.com", IsAdmin: true},
		},
	}
}

func (a *fakeAuthService) login(s *auth.Session, email, secret string, requireAdmin bool) bool {
	user, ok := a.users[email]
	if !ok || secret != a.password || (requireAdmin && !user.IsAdmin) {
		*s = auth.Session{State: auth.StateUnauthenticated}
		return false
	}
	s.ID = "sess"
	s.UserID = user.ID
	s.Email = user.Email
	s.IsAdmin = user.IsAdmin
	s.Token = "signed.jwt.token"
	s.ExpiresAt = time.Now().Add(time.Hour)
	s.State = auth.StateRegular
	if user.IsAdmin {
		s.State = auth.StateAdmin
	}
	return true
}

func (a *fakeAuthService) Login(ctx context.Context, db *gorm.DB, s *auth.Session, email, secret string) bool {
	return a.login(s, email, secret, false)
}

func (a *fakeAuthService) AdminLogin(ctx context.Context, db *gorm.DB, s *auth.Session, email, secret string) bool {
	return a.login(s, email, secret, true)
}

func (a *fakeAuthService) Logout(ctx context.Context, s *auth.Session) {
	a.loggedOut = true
	*s = auth.Session{State: auth.StateUnauthenticated}
}

func (a *fakeAuthService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*models.User, error) {
	if _, ok := a.users[req.Email]; ok {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	return &models.User{BaseModel: models.BaseModel{ID: "u3"}, Email: req.Email, Name: req.Name}, nil
}

func (a *fakeAuthService) GetProfile(db *gorm.DB, s *auth.Session) (*models.User, error) {
	if !s.Authenticated() {
		return nil, apperrors.ErrNoActiveSession
	}
	return a.users[s.Email], nil
}

func (a *fakeAuthService) UpdateProfile(ctx context.Context, db *gorm.DB, s *auth.Session, req *dto.ProfileUpdateRequest) (*models.User, error) {
	a.lastUpdate = req
	user := *a.users[s.Email]
	if req.Name != nil {
		user.Name = *req.Name
	}
	return &user, nil
}

type fakeAdviceService struct {
	err error
}

func (s *fakeAdviceService) Recommend(ctx context.Context, req *dto.AdviceRequest) (*dto.AdviceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AdviceResponse{Recommendation: "Diversify."}, nil
}

type fakeContactService struct{}

func (fakeContactService) SubmitContact(db *gorm.DB, req *dto.ContactRequest) (*models.ContactSubmission, error) {
	s := &models.ContactSubmission{Name: req.Name}
	s.ID = "contact-1"
	return s, nil
}

type fakeAdminService struct{}

func (fakeAdminService) Stats(db *gorm.DB) (*dto.StatsResponse, error) {
	return &dto.StatsResponse{TotalPlans: 4, PendingApplications: 2}, nil
}

// --- harness ---

type testServer struct {
	router *gin.Engine
	plans  *fakePlanService
	apps   *fakeApplicationService
	auth   *fakeAuthService
	advice *fakeAdviceService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	ts := &testServer{
		plans: &fakePlanService{plans: []models.Plan{
			{BaseModel: models.BaseModel{ID: "plan1"}, Title: "Mutual Fund SIP", Category: models.PlanCategoryInvestment},
		}},
		apps:   &fakeApplicationService{},
		auth:   newFakeAuthService(),
		advice: &fakeAdviceService{},
	}

	base := NewBaseHandler(validator.New())
	h := &AppHandlers{
		AuthHandler:        NewAuthHandler(base, ts.auth),
		ProfileHandler:     NewProfileHandler(base, ts.auth, ts.apps),
		PlanHandler:        NewPlanHandler(base, ts.plans, ts.apps),
		ApplicationHandler: NewApplicationHandler(base, ts.apps),
		AdviceHandler:      NewAdviceHandler(base, ts.advice),
		ContactHandler:     NewContactHandler(base, fakeContactService{}),
		AdminHandler:       NewAdminHandler(base, fakeAdminService{}),
	}

	r := gin.New()
	r.Use(middleware.DBMiddleware(db), middleware.SessionMiddleware(testSessions))
	api := r.Group("/api/v1")
	h.AuthHandler.RegisterRoutes(api)
	h.ProfileHandler.RegisterRoutes(api)
	h.PlanHandler.RegisterRoutes(api)
	h.ApplicationHandler.RegisterRoutes(api)
	h.AdviceHandler.RegisterRoutes(api)
	h.ContactHandler.RegisterRoutes(api)
	h.AdminHandler.RegisterRoutes(api)

	ts.router = r
	return ts
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return errBody["code"].(string)
}
