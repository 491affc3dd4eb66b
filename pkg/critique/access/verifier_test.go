package access

import (
	"context"
	"testing"
	"time"

	"creative-critique-be/internal/dto"
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeUserRepo struct {
	user    *entity.User
	updated bool
	bumped  int
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.user = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.user = user
	f.updated = true
	return nil
}

func (f *fakeUserRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	if f.user == nil {
		return 0, nil
	}
	return 1, nil
}

func (f *fakeUserRepo) IncrementConversations(_ context.Context, _ uuid.UUID) error {
	f.bumped++
	f.user.ConversationsThisMonth++
	return nil
}

func TestMonthsElapsed(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  int
	}{
		{"same day", date(2026, 1, 15), date(2026, 1, 15), 0},
		{"one day short", date(2026, 1, 15), date(2026, 2, 14), 0},
		{"exactly one month", date(2026, 1, 15), date(2026, 2, 15), 1},
		{"across year boundary", date(2025, 12, 1), date(2026, 3, 1), 3},
		{"clock skew before start", date(2026, 5, 1), date(2026, 4, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsElapsed(tt.start, tt.now))
		})
	}
}

func TestCheckQuotaResetsAfterWholeMonth(t *testing.T) {
	repo := &fakeUserRepo{user: &entity.User{
		Id:                     uuid.New(),
		Email:                  "artist@example.com",
		SubscriptionPlan:       entity.SubscriptionPlanFree,
		ConversationsThisMonth: 5,
		BillingPeriodStart:     date(2026, 1, 10),
	}}

	v := NewVerifier(repo)
	v.now = func() time.Time { return date(2026, 2, 11) }

	status, err := v.CheckQuota(context.Background(), repo.user.Id)
	assert.NoError(t, err)
	assert.True(t, repo.updated, "reset must be persisted")
	assert.Equal(t, 0, status.Used)
	assert.Equal(t, FreeLimit, status.Limit)
	assert.True(t, status.CanStart)
}

func TestCheckQuotaExhaustedWithinPeriod(t *testing.T) {
	repo := &fakeUserRepo{user: &entity.User{
		Id:                     uuid.New(),
		Email:                  "artist@example.com",
		SubscriptionPlan:       entity.SubscriptionPlanFree,
		ConversationsThisMonth: 5,
		BillingPeriodStart:     date(2026, 2, 1),
	}}

	v := NewVerifier(repo)
	v.now = func() time.Time { return date(2026, 2, 20) }

	status, err := v.CheckQuota(context.Background(), repo.user.Id)
	assert.NoError(t, err)
	assert.False(t, repo.updated)
	assert.Equal(t, 5, status.Used)
	assert.False(t, status.CanStart)
}

func TestCheckQuotaMissingUserIsError(t *testing.T) {
	repo := &fakeUserRepo{}

	v := NewVerifier(repo)
	status, err := v.CheckQuota(context.Background(), uuid.New())

	var notFound *dto.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Nil(t, status)
}

func TestCheckQuotaAcademicOverride(t *testing.T) {
	repo := &fakeUserRepo{user: &entity.User{
		Id:                     uuid.New(),
		Email:                  "student@cs.stanford.edu",
		SubscriptionPlan:       entity.SubscriptionPlanFree,
		ConversationsThisMonth: 30,
		BillingPeriodStart:     date(2026, 2, 1),
	}}

	v := NewVerifier(repo)
	v.now = func() time.Time { return date(2026, 2, 20) }

	status, err := v.CheckQuota(context.Background(), repo.user.Id)
	assert.NoError(t, err)
	assert.Equal(t, entity.SubscriptionPlanPremium, status.Plan)
	assert.Equal(t, PremiumLimit, status.Limit)
	assert.True(t, status.CanStart)
}

func TestIsAcademicEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@mit.edu", true},
		{"b@cam.ac.uk", true},
		{"c@waseda.ac.jp", true},
		{"d@gmail.com", false},
		{"e@education.com", false},
		{"no-at-sign", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAcademicEmail(tt.email), tt.email)
	}
}

func TestPlanLimits(t *testing.T) {
	assert.Equal(t, 5, PlanLimit(entity.SubscriptionPlanFree))
	assert.Equal(t, 25, PlanLimit(entity.SubscriptionPlanStandard))
	assert.Equal(t, 100, PlanLimit(entity.SubscriptionPlanPremium))
	assert.Equal(t, 5, PlanLimit(entity.SubscriptionPlan("unknown")))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
