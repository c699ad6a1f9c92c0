package portal

import (
	"context"
	"strings"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
)

// MessagesResult estado del hilo de mensajes de un ticket.
type MessagesResult struct {
	Messages []*entity.TicketMessage `json:"messages"`
	Loading  bool                    `json:"loading"`
	Error    *string                 `json:"error"`
}

func messageSpec(ticketID string) Spec[*entity.TicketMessage] {
	return Spec[*entity.TicketMessage]{
		Table:   repository.TableTicketMessages,
		Filters: []string{"ticket_id"},
		Fixtures: func() []*entity.TicketMessage {
			return fixtures.MessagesFor(ticketID, fixtures.TicketMessages())
		},
	}
}

func messageOptions(ticketID string) Options {
	return Options{
		Filters:       map[string]string{"ticket_id": ticketID},
		SortBy:        "created_at",
		SortDirection: query.Asc,
	}
}

// TicketMessages mensajes de un ticket en orden cronológico. Sin ticket (nil o vacío) devuelve
// un hilo vacío sin consultar nada.
func (p *Portal) TicketMessages(ctx context.Context, ticketID *string) MessagesResult {
	if ticketID == nil || strings.TrimSpace(*ticketID) == "" {
		return MessagesResult{Messages: []*entity.TicketMessage{}}
	}
	res := NewCollection(p, messageSpec(*ticketID), messageOptions(*ticketID)).Load(ctx)
	return MessagesResult{Messages: res.Records, Loading: res.Loading, Error: res.Error}
}

// PostTicketMessage agrega un mensaje al ticket en nombre de la identidad de la sesión.
func (p *Portal) PostTicketMessage(ctx context.Context, ticketID, text string) (*entity.TicketMessage, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, domain.NewValidationError("ticket_id", "requerido")
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("message", "requerido")
	}
	msg := &entity.TicketMessage{TicketID: ticketID, SenderRole: "supplier", Message: text}
	if id := p.sc.Identity; id != nil {
		msg.SenderID = id.ID
		msg.SenderName = id.Metadata.FullName
	}
	return NewCollection(p, messageSpec(ticketID), messageOptions(ticketID)).Create(ctx, msg)
}
