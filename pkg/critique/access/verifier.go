package access

import (
	"context"
	"strings"
	"time"

	"creative-critique-be/internal/dto"
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/repository/contract"
	"creative-critique-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Monthly conversation allowances per subscription plan.
const (
	FreeLimit     = 5
	StandardLimit = 25
	PremiumLimit  = 100
)

// Status is the quota snapshot for one user at one point in time.
type Status struct {
	Plan     entity.SubscriptionPlan
	Used     int
	Limit    int
	CanStart bool
	ResetsAt time.Time
}

// Verifier enforces the monthly conversation quota. CheckQuota performs the
// lazy reset-and-read; IncrementUsage records one consumed unit.
type Verifier struct {
	userRepo contract.UserRepository
	now      func() time.Time
}

func NewVerifier(userRepo contract.UserRepository) *Verifier {
	return &Verifier{userRepo: userRepo, now: time.Now}
}

// CheckQuota resets the counter if a whole calendar month has elapsed since
// the billing period start, then reports whether the user may start another
// conversation. The reset is persisted so concurrent checks converge.
func (v *Verifier) CheckQuota(ctx context.Context, userId uuid.UUID) (*Status, error) {
	user, err := v.userRepo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		// A token that verifies but has no user row is a broken precondition,
		// not a guest. Refuse rather than hand out a default allowance.
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	now := v.now()
	if MonthsElapsed(user.BillingPeriodStart, now) >= 1 {
		user.ConversationsThisMonth = 0
		user.BillingPeriodStart = now
		if err := v.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	limit := PlanLimit(EffectivePlan(user))
	return &Status{
		Plan:     EffectivePlan(user),
		Used:     user.ConversationsThisMonth,
		Limit:    limit,
		CanStart: user.ConversationsThisMonth < limit,
		ResetsAt: nextReset(user.BillingPeriodStart, now),
	}, nil
}

// IncrementUsage consumes one conversation unit. The bump happens in the
// database with an atomic column expression.
func (v *Verifier) IncrementUsage(ctx context.Context, userId uuid.UUID) error {
	return v.userRepo.IncrementConversations(ctx, userId)
}

// PlanLimit maps a subscription plan to its monthly allowance.
func PlanLimit(plan entity.SubscriptionPlan) int {
	switch plan {
	case entity.SubscriptionPlanPremium:
		return PremiumLimit
	case entity.SubscriptionPlanStandard:
		return StandardLimit
	default:
		return FreeLimit
	}
}

// EffectivePlan upgrades academic accounts to the premium allowance without
// touching the stored plan.
func EffectivePlan(user *entity.User) entity.SubscriptionPlan {
	if IsAcademicEmail(user.Email) {
		return entity.SubscriptionPlanPremium
	}
	return user.SubscriptionPlan
}

// IsAcademicEmail matches .edu domains and academic country domains such as
// .ac.uk or .ac.jp.
func IsAcademicEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	if domain == "edu" || strings.HasSuffix(domain, ".edu") {
		return true
	}
	parts := strings.Split(domain, ".")
	for _, p := range parts[:len(parts)-1] {
		if p == "ac" {
			return true
		}
	}
	return false
}

// MonthsElapsed counts whole calendar months between start and now. Partial
// months do not count: Jan 15 to Feb 14 is zero, Jan 15 to Feb 15 is one.
func MonthsElapsed(start, now time.Time) int {
	if now.Before(start) {
		return 0
	}
	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if now.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func nextReset(periodStart, now time.Time) time.Time {
	reset := periodStart.AddDate(0, 1, 0)
	for !reset.After(now) {
		reset = reset.AddDate(0, 1, 0)
	}
	return reset
}
