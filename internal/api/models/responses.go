package models

import "tcis/pkg/domain"

// LoginResponse is the 200 body of POST /api/login/.
type LoginResponse struct {
	UserID    domain.UserID `json:"user_id" validate:"gt=0"`
	FirstName string        `json:"firstname"`
	LastName  string        `json:"lastname"`
	Role      domain.Role   `json:"role" validate:"required"`
}

// SignupResponse is the 201 body of POST /api/signup/.
type SignupResponse struct {
	ID        domain.UserID `json:"id" validate:"gt=0"`
	FirstName string        `json:"firstname"`
	LastName  string        `json:"lastname"`
}

// ActiveTicketsResponse wraps GET /api/active_tickets/{id}/.
type ActiveTicketsResponse struct {
	ActiveTickets []Ticket `json:"active_tickets"`
}

// DriversResponse wraps GET /api/get_drivers/.
type DriversResponse struct {
	Drivers []User `json:"drivers"`
}

// DisputeReceipt is the 201 body of POST /api/submit_dispute/.
type DisputeReceipt struct {
	Message string `json:"message,omitempty"`
}

// TicketFine is the body of GET /api/ticket/{id}/.
type TicketFine struct {
	ID         domain.TicketID `json:"id,omitempty"`
	FineAmount domain.Amount   `json:"fine_amount" validate:"required"`
}
