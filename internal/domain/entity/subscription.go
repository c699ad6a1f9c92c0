package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de suscripción.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusTrialing  = "trialing"
	SubscriptionStatusPastDue   = "past_due"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription suscripción vigente de una empresa a un plan.
type Subscription struct {
	Tenancy
	PlanID             string     `json:"plan_id"`
	Status             string     `json:"status"`
	BillingCycle       string     `json:"billing_cycle"` // monthly, yearly
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`
}

// Plan define precio y nombre comercial (tabla subscription_plans).
type Plan struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	YearlyPrice  decimal.Decimal `json:"yearly_price"`
	Currency     string          `json:"currency"`
	IsActive     bool            `json:"is_active"`
	SortOrder    int             `json:"sort_order"`
}

// Tier límites numéricos y features de un plan (tabla subscription_tiers).
// Un límite igual a subscription.Unlimited significa "sin límite".
type Tier struct {
	ID           string   `json:"id"`
	PlanID       string   `json:"plan_id"`
	ProductLimit int64    `json:"product_limit"`
	OrderLimit   int64    `json:"order_limit"`
	GMVLimit     int64    `json:"gmv_limit"` // SAR por mes
	BranchLimit  int64    `json:"branch_limit"`
	UserLimit    int64    `json:"user_limit"`
	Features     []string `json:"features"`
}

// HasFeature informa si el token está en la lista de features del tier.
func (t Tier) HasFeature(token string) bool {
	for _, f := range t.Features {
		if f == token {
			return true
		}
	}
	return false
}

// Usage contadores del mes para una empresa (tabla usage_records).
type Usage struct {
	Tenancy
	Month        string          `json:"month"` // YYYY-MM
	ProductsUsed int64           `json:"products_used"`
	OrdersUsed   int64           `json:"orders_used"`
	GMVUsed      decimal.Decimal `json:"gmv_used"`
	BranchesUsed int64           `json:"branches_used"`
	UsersUsed    int64           `json:"users_used"`
}
