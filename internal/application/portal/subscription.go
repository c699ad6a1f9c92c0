package portal

import (
	"context"
	"fmt"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/domain/subscription"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
)

// SubscriptionView suscripción vigente con plan, tier, uso del mes y snapshot derivado.
// Cualquier parte puede faltar (nil); el snapshot solo existe con tier y uso.
type SubscriptionView struct {
	Subscription *entity.Subscription   `json:"subscription"`
	Plan         *entity.Plan           `json:"plan"`
	Tier         *entity.Tier           `json:"tier"`
	Usage        *entity.Usage          `json:"usage"`
	Snapshot     *subscription.Snapshot `json:"snapshot"`
	HighUsage    bool                   `json:"high_usage"`
}

// Banner aviso de uso alto derivado de la vista.
func (v SubscriptionView) Banner() subscription.Banner {
	return subscription.BuildBanner(v.Subscription, v.Plan, v.Tier, v.Usage)
}

// Subscription arma la vista de la suscripción del tenant. Si el catálogo de planes falla
// usa el plan gratuito por defecto y sigue con el uso.
func (p *Portal) Subscription(ctx context.Context) (SubscriptionView, error) {
	var view SubscriptionView

	subs, err := fetch(ctx, p, repository.TableSubscriptions,
		query.New().OrderBy("created_at", query.Desc).WithLimit(1),
		func() []*entity.Subscription { return []*entity.Subscription{fixtures.Subscription()} })
	if err != nil {
		return view, fmt.Errorf("leer suscripción: %w", err)
	}
	if len(subs) == 0 {
		return view, nil
	}
	view.Subscription = subs[0]

	plans, tiers, err := p.catalog(ctx, query.New().Eq("id", view.Subscription.PlanID).WithLimit(1))
	switch {
	case err != nil:
		p.log.Warn().Err(err).Str("plan_id", view.Subscription.PlanID).Msg("plan no disponible; se usa el plan gratuito")
		plan, tier := subscription.FreePlan, subscription.FreeTier
		view.Plan, view.Tier = &plan, &tier
	case len(plans) > 0:
		view.Plan = plans[0]
		view.Tier = tierFor(view.Plan.ID, tiers)
	}

	usage, err := fetch(ctx, p, repository.TableUsage,
		query.New().Eq("month", p.now().Format("2006-01")).OrderBy("created_at", query.Desc).WithLimit(1),
		func() []*entity.Usage { return []*entity.Usage{fixtures.Usage()} })
	if err != nil {
		return view, fmt.Errorf("leer uso: %w", err)
	}
	if len(usage) > 0 {
		view.Usage = usage[0]
	}

	if view.Tier != nil && view.Usage != nil {
		snap := subscription.NewSnapshot(*view.Tier, *view.Usage)
		view.Snapshot = &snap
		view.HighUsage = subscription.HasHighUsage(snap)
	}
	return view, nil
}

// Tiers tarjetas de planes activos ordenadas por sort_order. Si el catálogo no se puede leer
// devuelve el plan gratuito por defecto: nunca bloquea la pantalla de precios.
func (p *Portal) Tiers(ctx context.Context) []subscription.DisplayTier {
	plans, tiers, err := p.catalog(ctx, query.New().Eq("is_active", true).OrderBy("sort_order", query.Asc))
	if err != nil || len(plans) == 0 {
		if err != nil {
			p.log.Warn().Err(err).Msg("catálogo de planes no disponible; se usa el plan gratuito")
		}
		return subscription.FallbackTiers()
	}
	out := make([]subscription.DisplayTier, 0, len(plans))
	for _, plan := range plans {
		if tier := tierFor(plan.ID, tiers); tier != nil {
			out = append(out, subscription.FormatTier(*plan, *tier))
		}
	}
	if len(out) == 0 {
		return subscription.FallbackTiers()
	}
	return out
}

// catalog planes (filtrados por q) y todos los tiers. El catálogo es global, no tenant-scoped.
func (p *Portal) catalog(ctx context.Context, q query.Query) ([]*entity.Plan, []*entity.Tier, error) {
	if p.sc.Demo {
		plans, err := query.Apply(fixtures.Plans(), q)
		if err != nil {
			return nil, nil, err
		}
		return plans, fixtures.Tiers(), nil
	}
	var plans []*entity.Plan
	if err := p.backend.Select(ctx, repository.TablePlans, q, &plans); err != nil {
		return nil, nil, err
	}
	var tiers []*entity.Tier
	if err := p.backend.Select(ctx, repository.TableTiers, query.New(), &tiers); err != nil {
		return nil, nil, err
	}
	return plans, tiers, nil
}

func tierFor(planID string, tiers []*entity.Tier) *entity.Tier {
	for _, t := range tiers {
		if t.PlanID == planID {
			return t
		}
	}
	return nil
}
