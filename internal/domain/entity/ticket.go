package entity

import "time"

// Estados de ticket de soporte.
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// Prioridades de ticket.
const (
	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
	TicketPriorityUrgent = "urgent"
)

// Ticket solicitud de soporte abierta por el proveedor.
type Ticket struct {
	Tenancy
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"` // technical, billing, orders, account, other
	AssignedTo  *string    `json:"assigned_to"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

// TicketMessage mensaje dentro de un ticket (sub-recurso por ticket_id).
type TicketMessage struct {
	Tenancy
	TicketID      string  `json:"ticket_id"`
	SenderID      string  `json:"sender_id"`
	SenderName    string  `json:"sender_name"`
	SenderRole    string  `json:"sender_role"` // supplier, support
	Message       string  `json:"message"`
	AttachmentURL *string `json:"attachment_url"`
}

// TicketSummary fila de la vista ticket_summaries.
type TicketSummary struct {
	Tenancy
	Subject       string     `json:"subject"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	Category      string     `json:"category"`
	MessageCount  int        `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at"`
}
