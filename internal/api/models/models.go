// Package models mirrors the entity shapes owned by the citation backend. The client
// never stores them durably; they live for as long as a screen displays them.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"tcis/pkg/domain"
)

// Ticket statuses the client knows by name. The backend may send others.
const (
	TicketStatusPending = "Pending"
	TicketStatusPaid    = "Paid"
)

// User is an account as returned by the drivers list and the profile endpoint.
type User struct {
	ID           domain.UserID `json:"id" validate:"gt=0"`
	FirstName    string        `json:"firstname"`
	LastName     string        `json:"lastname"`
	Username     string        `json:"username,omitempty"`
	MobileNumber string        `json:"mobile_number,omitempty"`
	Role         domain.Role   `json:"role,omitempty"`
}

// FullName joins first and last name for pickers and headers.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Violation is a catalog entry mapping a name to a fixed penalty.
type Violation struct {
	ID            domain.ViolationID `json:"id" validate:"gt=0"`
	Name          string             `json:"name" validate:"required"`
	PenaltyAmount domain.Amount      `json:"penalty_amount"`
}

// ViolationRef is the violation attached to a ticket. Depending on the endpoint the
// backend nests the full violation, sends only its id, or sends only its name.
type ViolationRef struct {
	ID            domain.ViolationID `json:"id,omitempty"`
	Name          string             `json:"name,omitempty"`
	PenaltyAmount domain.Amount      `json:"penalty_amount,omitempty"`
}

func (v *ViolationRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = ViolationRef{}
		return nil
	case data[0] == '{':
		type plain ViolationRef
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*v = ViolationRef(p)
		return nil
	case data[0] == '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*v = ViolationRef{Name: name}
		return nil
	default:
		var id int64
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("violation_details: %w", err)
		}
		*v = ViolationRef{ID: domain.ViolationID(id)}
		return nil
	}
}

// Ticket is a citation issued by a police user against a driver.
type Ticket struct {
	ID               domain.TicketID `json:"id" validate:"gt=0"`
	LicenseNo        string          `json:"license_no"`
	PlateNumber      string          `json:"plate_number"`
	ViolationDetails ViolationRef    `json:"violation_details"`
	Violation        string          `json:"violation,omitempty"`
	FineAmount       domain.Amount   `json:"fine_amount"`
	DueDate          domain.Date     `json:"due_date"`
	Status           string          `json:"status"`
	IssuedBy         domain.UserID   `json:"issued_by,omitempty"`
	Location         string          `json:"location,omitempty"`
	DriverSignature  string          `json:"driver_signature,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ViolationName returns the best available violation label.
func (t Ticket) ViolationName() string {
	if t.ViolationDetails.Name != "" {
		return t.ViolationDetails.Name
	}
	if t.Violation != "" {
		return t.Violation
	}
	if t.ViolationDetails.ID != 0 {
		return "Violation #" + t.ViolationDetails.ID.String()
	}
	return "-"
}

// Dispute is a driver-filed contest of a ticket.
type Dispute struct {
	ID        domain.DisputeID `json:"id"`
	Ticket    domain.TicketID  `json:"ticket" validate:"gt=0"`
	FiledBy   domain.UserID    `json:"filed_by"`
	Reason    string           `json:"reason"`
	Status    string           `json:"status,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Profile is the editable part of a user account.
type Profile struct {
	ID           domain.UserID `json:"id,omitempty"`
	FirstName    string        `json:"firstname"`
	LastName     string        `json:"lastname"`
	Username     string        `json:"username,omitempty"`
	MobileNumber string        `json:"mobile_number"`
	Role         domain.Role   `json:"role,omitempty"`
}

// TicketCounts backs the police dashboard stat boxes.
type TicketCounts struct {
	TotalTickets     int `json:"total_tickets" validate:"gte=0"`
	PendingTickets   int `json:"pending_tickets" validate:"gte=0"`
	ResolvedDisputes int `json:"resolved_disputes" validate:"gte=0"`
}

// Activity is one recent-activity line on the police dashboard.
type Activity struct {
	Description string          `json:"description,omitempty"`
	TicketID    domain.TicketID `json:"ticket_id,omitempty"`
	FineAmount  domain.Amount   `json:"fine_amount,omitempty"`
}

// Line renders the activity the way the dashboard lists it.
func (a Activity) Line() string {
	if a.Description != "" {
		return a.Description
	}
	return fmt.Sprintf("Ticket ID: %s - Fine: %s", a.TicketID, a.FineAmount)
}
