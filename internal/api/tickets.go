package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"tcis/internal/api/models"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
	"tcis/pkg/validation"
)

// ActiveTickets lists a driver's unpaid tickets.
func (c *HTTPClient) ActiveTickets(ctx context.Context, userID domain.UserID) ([]models.Ticket, error) {
	var out models.ActiveTicketsResponse
	err := c.do(ctx, call{
		operation: OpActiveTickets,
		method:    http.MethodGet,
		path:      path(PathActiveTickets, userID),
		success:   statusOK,
		decode: func(body []byte) error {
			if err := decodeObject(&out)(body); err != nil {
				return err
			}
			if out.ActiveTickets == nil {
				return errMissingField("active_tickets")
			}
			return validation.ValidateEach(out.ActiveTickets)
		},
	})
	if err != nil {
		return nil, err
	}
	return out.ActiveTickets, nil
}

// AddTicket issues a ticket. The signature is forwarded untouched.
func (c *HTTPClient) AddTicket(ctx context.Context, ticket models.NewTicket) error {
	cl, err := jsonCall(OpAddTicket, http.MethodPost, PathAddTicket, ticket, statusOKOrNew)
	if err != nil {
		return err
	}
	return c.do(ctx, cl)
}

// Violations returns the violation catalog.
func (c *HTTPClient) Violations(ctx context.Context) ([]models.Violation, error) {
	var out []models.Violation
	err := c.do(ctx, call{
		operation: OpViolations,
		method:    http.MethodGet,
		path:      PathViolations,
		success:   statusOK,
		decode:    decodeList(&out),
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Drivers returns the accounts a ticket can be issued against.
func (c *HTTPClient) Drivers(ctx context.Context) ([]models.User, error) {
	var out models.DriversResponse
	err := c.do(ctx, call{
		operation: OpDrivers,
		method:    http.MethodGet,
		path:      PathDrivers,
		success:   statusOK,
		decode: func(body []byte) error {
			if err := decodeObject(&out)(body); err != nil {
				return err
			}
			if out.Drivers == nil {
				return errMissingField("drivers")
			}
			return validation.ValidateEach(out.Drivers)
		},
	})
	if err != nil {
		return nil, err
	}
	return out.Drivers, nil
}

// SearchTickets lists tickets created within [start, end].
func (c *HTTPClient) SearchTickets(ctx context.Context, start, end domain.Date) ([]models.Ticket, error) {
	var out []models.Ticket
	err := c.do(ctx, call{
		operation: OpSearchTickets,
		method:    http.MethodGet,
		path:      PathSearchTickets,
		query: url.Values{
			"start_date": {start.String()},
			"end_date":   {end.String()},
		},
		success: statusOK,
		decode:  decodeList(&out),
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IssuedTickets lists every ticket issued by a police user.
func (c *HTTPClient) IssuedTickets(ctx context.Context, userID domain.UserID) ([]models.Ticket, error) {
	var out []models.Ticket
	err := c.do(ctx, call{
		operation: OpIssuedTickets,
		method:    http.MethodGet,
		path:      path(PathIssuedTickets, userID),
		success:   statusOK,
		decode:    decodeList(&out),
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TicketFine looks up the amount owed on a ticket. ticketID is passed as typed.
func (c *HTTPClient) TicketFine(ctx context.Context, ticketID string) (*models.TicketFine, error) {
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "ticket ID cannot be empty")
	}
	var out models.TicketFine
	err := c.do(ctx, call{
		operation: OpTicketFine,
		method:    http.MethodGet,
		path:      PathTicket + url.PathEscape(ticketID) + "/",
		success:   statusOK,
		decode:    decodeObject(&out),
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
