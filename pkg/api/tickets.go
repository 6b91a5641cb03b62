package api

import (
	"context"
	"fmt"
)

// TicketPriority is the urgency a support ticket is filed with.
type TicketPriority string

const (
	PriorityHigh    TicketPriority = "High"
	PriorityAverage TicketPriority = "Average"
	PriorityLow     TicketPriority = "Low"
)

// Ticket is a support request raised from anywhere in the app; PageURL
// records where the reporter was when they filed it.
type Ticket struct {
	Summary  string         `json:"summary"`
	Priority TicketPriority `json:"priority"`
	PageURL  string         `json:"pageUrl"`
}

// CreateTicket files a support ticket.
func (c *Client) CreateTicket(ctx context.Context, ticket Ticket) error {
	if ticket.Summary == "" {
		return fmt.Errorf("api: ticket summary is required")
	}
	switch ticket.Priority {
	case PriorityHigh, PriorityAverage, PriorityLow:
	default:
		return fmt.Errorf("api: unknown ticket priority %q", ticket.Priority)
	}
	return c.post(ctx, "/tickets", ticket, nil)
}
