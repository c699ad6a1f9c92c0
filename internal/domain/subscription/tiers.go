package subscription

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// NoYearlyDiscount centinela cuando el plan no tiene precio anual.
const NoYearlyDiscount = "—"

// RecommendedPlanName plan destacado en la tabla de precios.
const RecommendedPlanName = "Advanced"

// DisplayTier tarjeta de plan lista para mostrar.
type DisplayTier struct {
	PlanID         string `json:"plan_id"`
	Name           string `json:"name"`
	Price          string `json:"price"`
	YearlyDiscount string `json:"yearly_discount"`
	Products       string `json:"products"`
	Orders         string `json:"orders"`
	GMV            string `json:"gmv"`
	Branches       string `json:"branches"`
	Users          string `json:"users"`
	Inventory      string `json:"inventory"`
	Compliance     string `json:"compliance"`
	Marketing      string `json:"marketing"`
	Trial          string `json:"trial"`
	Integrations   string `json:"integrations"`
	Analytics      string `json:"analytics"`
	Support        string `json:"support"`
	Training       string `json:"training"`
	Recommended    bool   `json:"recommended"`
}

// level token de feature y la etiqueta que produce; el primero presente gana.
type level struct {
	token string
	label string
}

// Precedencias fijas por campo (de mayor a menor).
var (
	inventoryLevels = []level{
		{"advanced_inventory", "Advanced"},
		{"basic_inventory", "Basic"},
		{"inventory", "Standard"},
	}
	complianceLevels = []level{
		{"full_compliance", "Full"},
		{"basic_compliance", "Basic"},
		{"compliance", "Standard"},
	}
	marketingLevels = []level{
		{"advanced_marketing", "Advanced"},
		{"basic_marketing", "Basic"},
		{"marketing", "Standard"},
	}
	trialLevels = []level{
		{"trial_30_days", "30 days"},
		{"trial_14_days", "14 days"},
		{"trial_7_days", "7 days"},
	}
	integrationLevels = []level{
		{"custom_integrations", "Custom"},
		{"api_access", "API"},
		{"integrations", "Standard"},
	}
	analyticsLevels = []level{
		{"full_analytics", "Full"},
		{"basic_analytics", "Basic"},
		{"analytics", "Standard"},
	}
	supportLevels = []level{
		{"dedicated_support", "Dedicated manager"},
		{"priority_support", "Priority"},
		{"email_support", "Email"},
	}
	trainingLevels = []level{
		{"onsite_training", "On-site"},
		{"online_training", "Online"},
	}
)

func resolveLevel(tier entity.Tier, levels []level, none string) string {
	for _, l := range levels {
		if tier.HasFeature(l.token) {
			return l.label
		}
	}
	return none
}

// FormatLimit "Unlimited" para el centinela, el número literal en otro caso.
func FormatLimit(limit int64) string {
	if IsUnlimited(limit) {
		return "Unlimited"
	}
	return fmt.Sprintf("%d", limit)
}

// FormatPrice "Free" si el precio mensual es 0, si no "<precio> SAR/month".
func FormatPrice(monthly decimal.Decimal) string {
	if monthly.IsZero() {
		return "Free"
	}
	return monthly.String() + " SAR/month"
}

// YearlyDiscount round((1 - yearly/(monthly*12))*100) como "N%", o el centinela si no hay
// precio anual (o mensual) contra el cual comparar.
func YearlyDiscount(monthly, yearly decimal.Decimal) string {
	if yearly.IsZero() || monthly.IsZero() {
		return NoYearlyDiscount
	}
	full := monthly.Mul(decimal.NewFromInt(12))
	pct := decimal.NewFromInt(1).Sub(yearly.Div(full)).Mul(decimal.NewFromInt(100)).Round(0)
	return pct.String() + "%"
}

// FormatTier mapea plan + tier a la tarjeta de presentación.
func FormatTier(plan entity.Plan, tier entity.Tier) DisplayTier {
	return DisplayTier{
		PlanID:         plan.ID,
		Name:           plan.Name,
		Price:          FormatPrice(plan.MonthlyPrice),
		YearlyDiscount: YearlyDiscount(plan.MonthlyPrice, plan.YearlyPrice),
		Products:       FormatLimit(tier.ProductLimit),
		Orders:         FormatLimit(tier.OrderLimit),
		GMV:            FormatLimit(tier.GMVLimit),
		Branches:       FormatLimit(tier.BranchLimit),
		Users:          FormatLimit(tier.UserLimit),
		Inventory:      resolveLevel(tier, inventoryLevels, "None"),
		Compliance:     resolveLevel(tier, complianceLevels, "None"),
		Marketing:      resolveLevel(tier, marketingLevels, "None"),
		Trial:          resolveLevel(tier, trialLevels, "No trial"),
		Integrations:   resolveLevel(tier, integrationLevels, "None"),
		Analytics:      resolveLevel(tier, analyticsLevels, "None"),
		Support:        resolveLevel(tier, supportLevels, "Community"),
		Training:       resolveLevel(tier, trainingLevels, "None"),
		Recommended:    plan.Name == RecommendedPlanName,
	}
}

// FreePlan y FreeTier definen el plan por defecto cuando no se pueden leer los planes remotos.
var (
	FreePlan = entity.Plan{
		ID:           "free",
		Name:         "Free",
		MonthlyPrice: decimal.Zero,
		YearlyPrice:  decimal.Zero,
		Currency:     "SAR",
		IsActive:     true,
	}
	FreeTier = entity.Tier{
		ID:           "free",
		PlanID:       "free",
		ProductLimit: 10,
		OrderLimit:   50,
		GMVLimit:     10000,
		BranchLimit:  1,
		UserLimit:    1,
		Features:     []string{"inventory", "email_support"},
	}
)

// FallbackTiers lista de un solo plan gratuito usada ante fallo de la consulta remota.
func FallbackTiers() []DisplayTier {
	return []DisplayTier{FormatTier(FreePlan, FreeTier)}
}
