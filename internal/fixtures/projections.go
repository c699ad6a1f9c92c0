package fixtures

import (
	"sort"
	"time"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// Proyecciones de solo lectura equivalentes a las vistas remotas active_products,
// order_summaries y ticket_summaries. Se calculan sobre las tablas que reciben.

// ActiveProducts productos con estado active.
func ActiveProducts(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.Status == entity.ProductStatusActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

// OrderSummaries une cada pedido con el nombre de su tienda y cuenta sus líneas.
// Un pedido cuya tienda no existe conserva store_name nulo.
func OrderSummaries(orders []*entity.Order, stores []*entity.Store) []*entity.OrderSummary {
	names := make(map[string]string, len(stores))
	for _, s := range stores {
		names[s.ID] = s.Name
	}
	out := make([]*entity.OrderSummary, 0, len(orders))
	for _, o := range orders {
		sum := &entity.OrderSummary{
			Tenancy:       o.Tenancy,
			OrderNumber:   o.OrderNumber,
			StoreID:       o.StoreID,
			CustomerName:  o.CustomerName,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			TotalAmount:   o.TotalAmount,
			ItemCount:     len(o.Items),
		}
		if name, ok := names[o.StoreID]; ok {
			sum.StoreName = &name
		}
		out = append(out, sum)
	}
	return out
}

// TicketSummaries une cada ticket con el número de mensajes y la fecha del último.
func TicketSummaries(tickets []*entity.Ticket, messages []*entity.TicketMessage) []*entity.TicketSummary {
	type agg struct {
		count int
		last  time.Time
	}
	byTicket := make(map[string]*agg, len(tickets))
	for _, m := range messages {
		a, ok := byTicket[m.TicketID]
		if !ok {
			a = &agg{}
			byTicket[m.TicketID] = a
		}
		a.count++
		if m.CreatedAt.After(a.last) {
			a.last = m.CreatedAt
		}
	}
	out := make([]*entity.TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		sum := &entity.TicketSummary{
			Tenancy:  t.Tenancy,
			Subject:  t.Subject,
			Status:   t.Status,
			Priority: t.Priority,
			Category: t.Category,
		}
		if a, ok := byTicket[t.ID]; ok {
			last := a.last
			sum.MessageCount = a.count
			sum.LastMessageAt = &last
		}
		out = append(out, sum)
	}
	return out
}

// MessagesFor mensajes de un ticket en orden cronológico.
func MessagesFor(ticketID string, messages []*entity.TicketMessage) []*entity.TicketMessage {
	out := make([]*entity.TicketMessage, 0)
	for _, m := range messages {
		if m.TicketID == ticketID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
