// Package subscription convierte límites de tier y contadores de uso en valores listos para
// la UI: porcentajes, alerta de "cerca del límite", banner y tarjetas de planes.
package subscription

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// Unlimited valor centinela de un límite sin tope (máximo int4 de Postgres).
const Unlimited int64 = math.MaxInt32

// HighUsageThreshold porcentaje a partir del cual (estrictamente mayor) se alerta.
const HighUsageThreshold = 80

// IsUnlimited informa si el límite es el centinela (o mayor).
func IsUnlimited(limit int64) bool {
	return limit >= Unlimited
}

// UsagePercent = round(min(100, used/limit*100)), acotado a [0,100].
// Un límite cero, negativo o ilimitado produce 0 (nunca NaN/Inf).
func UsagePercent(used, limit int64) int {
	if limit <= 0 || IsUnlimited(limit) || used <= 0 {
		return 0
	}
	pct := math.Round(math.Min(100, float64(used)/float64(limit)*100))
	return int(pct)
}

// UsagePercentDecimal variante monetaria (GMV).
func UsagePercentDecimal(used decimal.Decimal, limit int64) int {
	if limit <= 0 || IsUnlimited(limit) || !used.IsPositive() {
		return 0
	}
	pct := used.Div(decimal.NewFromInt(limit)).Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	return int(pct.Round(0).IntPart())
}

// Metric métrica de uso frente a su límite.
type Metric struct {
	Key     string `json:"key"` // products, orders, gmv, branches, users
	Label   string `json:"label"`
	Used    string `json:"used"`
	Limit   string `json:"limit"`
	Percent int    `json:"percent"`
}

// High informa si la métrica supera el umbral.
func (m Metric) High() bool { return m.Percent > HighUsageThreshold }

// Snapshot proyección derivada (no persistida) de tier + uso.
type Snapshot struct {
	Products Metric `json:"products"`
	Orders   Metric `json:"orders"`
	GMV      Metric `json:"gmv"`
	Branches Metric `json:"branches"`
	Users    Metric `json:"users"`
}

// Metrics devuelve las cinco métricas en orden fijo de presentación.
func (s Snapshot) Metrics() []Metric {
	return []Metric{s.Products, s.Orders, s.GMV, s.Branches, s.Users}
}

// NewSnapshot calcula el snapshot a partir del tier y el registro de uso del mes.
func NewSnapshot(tier entity.Tier, usage entity.Usage) Snapshot {
	count := func(key, label string, used, limit int64) Metric {
		return Metric{
			Key: key, Label: label,
			Used:    fmt.Sprintf("%d", used),
			Limit:   FormatLimit(limit),
			Percent: UsagePercent(used, limit),
		}
	}
	return Snapshot{
		Products: count("products", "products", usage.ProductsUsed, tier.ProductLimit),
		Orders:   count("orders", "orders", usage.OrdersUsed, tier.OrderLimit),
		GMV: Metric{
			Key: "gmv", Label: "SAR GMV",
			Used:    usage.GMVUsed.StringFixed(0),
			Limit:   FormatLimit(tier.GMVLimit),
			Percent: UsagePercentDecimal(usage.GMVUsed, tier.GMVLimit),
		},
		Branches: count("branches", "branches", usage.BranchesUsed, tier.BranchLimit),
		Users:    count("users", "users", usage.UsersUsed, tier.UserLimit),
	}
}

// HasHighUsage único predicado de alerta: alguna de las cinco métricas supera el 80%.
func HasHighUsage(s Snapshot) bool {
	for _, m := range s.Metrics() {
		if m.High() {
			return true
		}
	}
	return false
}

// UpgradeCallToAction texto fijo del llamado a mejorar el plan.
const UpgradeCallToAction = "Upgrade your plan to raise your limits and keep your store running without interruptions."

// Banner contenido del aviso de uso alto. Visible=false significa "no renderizar nada".
type Banner struct {
	Visible      bool     `json:"visible"`
	Lines        []string `json:"lines"`
	CallToAction string   `json:"call_to_action,omitempty"`
}

// BuildBanner aplica el contrato del banner: nada si falta suscripción, plan, tier o uso, o si
// no hay uso alto; en otro caso una línea por métrica sobre el umbral más el llamado a la acción.
func BuildBanner(sub *entity.Subscription, plan *entity.Plan, tier *entity.Tier, usage *entity.Usage) Banner {
	if sub == nil || plan == nil || tier == nil || usage == nil {
		return Banner{Lines: []string{}}
	}
	snap := NewSnapshot(*tier, *usage)
	if !HasHighUsage(snap) {
		return Banner{Lines: []string{}}
	}
	lines := make([]string, 0, 5)
	for _, m := range snap.Metrics() {
		if m.High() {
			lines = append(lines, fmt.Sprintf("%s of %s %s (%d%%)", m.Used, m.Limit, m.Label, m.Percent))
		}
	}
	return Banner{Visible: true, Lines: lines, CallToAction: UpgradeCallToAction}
}
