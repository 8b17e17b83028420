package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"financeflow_backend/internal/advisor"
	"financeflow_backend/internal/email"
	"financeflow_backend/internal/models"
	"financeflow_backend/internal/repositories"

	"gorm.io/gorm"
)

var errStorage = errors.New("connection refused")

type fakePlanRepo struct {
	plans   map[string]models.Plan
	seq     int
	failAll bool
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[string]models.Plan{}}
}

func (r *fakePlanRepo) Create(db *gorm.DB, plan *models.Plan) error {
	if r.failAll {
		return errStorage
	}
	r.seq++
	if plan.ID == "" {
		plan.ID = fmt.Sprintf("gen-%d", r.seq)
	}
	plan.CreatedAt = time.Unix(int64(r.seq), 0)
	r.plans[plan.ID] = *plan
	return nil
}

func (r *fakePlanRepo) FindAll(db *gorm.DB, category *models.PlanCategory) ([]models.Plan, error) {
	if r.failAll {
		return nil, errStorage
	}
	var out []models.Plan
	for _, p := range r.plans {
		if category == nil || p.Category == *category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (r *fakePlanRepo) FindByID(db *gorm.DB, id string) (*models.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repositories.ErrPlanNotFound
	}
	return &p, nil
}

func (r *fakePlanRepo) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	p, ok := r.plans[id]
	if !ok {
		return repositories.ErrPlanNotFound
	}
	for k, v := range updates {
		switch k {
		case "title":
			p.Title = v.(string)
		case "category":
			p.Category = v.(models.PlanCategory)
		case "description":
			p.Description = v.(string)
		case "details":
			p.Details = v.(string)
		case "icon":
			p.Icon = v.(string)
		case "image_url":
			p.ImageURL = v.(string)
		}
	}
	r.plans[id] = p
	return nil
}

func (r *fakePlanRepo) Delete(db *gorm.DB, id string) error {
	delete(r.plans, id)
	return nil
}

func (r *fakePlanRepo) Count(db *gorm.DB) (int64, error) {
	if r.failAll {
		return 0, errStorage
	}
	return int64(len(r.plans)), nil
}

func (r *fakePlanRepo) InsertIfAbsent(db *gorm.DB, plans []models.Plan) (int64, error) {
	var n int64
	for _, p := range plans {
		if _, ok := r.plans[p.ID]; ok {
			continue
		}
		r.plans[p.ID] = p
		n++
	}
	return n, nil
}

type fakeApplicationRepo struct {
	apps map[string]models.Application
	seq  int
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[string]models.Application{}}
}

func (r *fakeApplicationRepo) Create(db *gorm.DB, app *models.Application) error {
	r.seq++
	app.ID = fmt.Sprintf("app-%d", r.seq)
	r.apps[app.ID] = *app
	return nil
}

func (r *fakeApplicationRepo) sorted(filter func(models.Application) bool) []models.Application {
	var out []models.Application
	for _, a := range r.apps {
		if filter(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out
}

func (r *fakeApplicationRepo) FindAll(db *gorm.DB) ([]models.Application, error) {
	return r.sorted(func(models.Application) bool { return true }), nil
}

func (r *fakeApplicationRepo) FindByUser(db *gorm.DB, userID string) ([]models.Application, error) {
	return r.sorted(func(a models.Application) bool { return a.UserID != nil && *a.UserID == userID }), nil
}

func (r *fakeApplicationRepo) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	return &a, nil
}

func (r *fakeApplicationRepo) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, onlyPending bool) error {
	a, ok := r.apps[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	if onlyPending && a.Status != models.ApplicationStatusPending {
		return repositories.ErrApplicationDecided
	}
	now := time.Now()
	a.Status = status
	a.UpdatedAt = &now
	r.apps[id] = a
	return nil
}

func (r *fakeApplicationRepo) Count(db *gorm.DB) (int64, error) {
	return int64(len(r.apps)), nil
}

func (r *fakeApplicationRepo) CountByStatus(db *gorm.DB) (map[models.ApplicationStatus]int64, error) {
	counts := map[models.ApplicationStatus]int64{
		models.ApplicationStatusPending:  0,
		models.ApplicationStatusApproved: 0,
		models.ApplicationStatusRejected: 0,
	}
	for _, a := range r.apps {
		counts[a.Status]++
	}
	return counts, nil
}

type fakeContactRepo struct {
	saved []models.ContactSubmission
}

func (r *fakeContactRepo) Create(db *gorm.DB, s *models.ContactSubmission) error {
	s.ID = fmt.Sprintf("contact-%d", len(r.saved)+1)
	r.saved = append(r.saved, *s)
	return nil
}

func (r *fakeContactRepo) Count(db *gorm.DB) (int64, error) {
	return int64(len(r.saved)), nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(e *email.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e.Subject)
	return nil
}

func (m *fakeMailer) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	return m.Send(&email.Email{To: to, Subject: subject})
}

func (m *fakeMailer) Validate() error { return nil }

type fakeAdvisor struct {
	advice *advisor.Advice
	err    error
	calls  int
}

func (a *fakeAdvisor) Recommend(ctx context.Context, income float64) (*advisor.Advice, error) {
	a.calls++
	return a.advice, a.err
}
