package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan string

const (
	SubscriptionPlanFree     SubscriptionPlan = "free"
	SubscriptionPlanStandard SubscriptionPlan = "standard"
	SubscriptionPlanPremium  SubscriptionPlan = "premium"
)

type User struct {
	Id               uuid.UUID
	Email            string
	FullName         string
	SubscriptionPlan SubscriptionPlan

	// Monthly conversation quota tracking. The counter resets when a whole
	// calendar month has elapsed since BillingPeriodStart.
	ConversationsThisMonth int
	BillingPeriodStart     time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
