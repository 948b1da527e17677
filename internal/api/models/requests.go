package models

import "tcis/pkg/domain"

// LoginRequest is the body of POST /api/login/.
type LoginRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// SignupRequest is the body of POST /api/signup/.
type SignupRequest struct {
	FirstName    string      `json:"firstname"`
	LastName     string      `json:"lastname"`
	Username     string      `json:"username"`
	Password     string      `json:"password"`
	MobileNumber string      `json:"mobile_number"`
	Role         domain.Role `json:"role"`
}

// NewTicket is the body of POST /api/addticket/. DriverSignature is the opaque
// data-URI produced by the signature canvas, forwarded verbatim.
type NewTicket struct {
	LicenseNo       string             `json:"license_no"`
	PlateNumber     string             `json:"plate_number"`
	DriverID        domain.UserID      `json:"user_id,omitempty"`
	ViolationID     domain.ViolationID `json:"violation_details"`
	FineAmount      domain.Amount      `json:"fine_amount"`
	DueDate         domain.Date        `json:"due_date"`
	Status          string             `json:"status"`
	IssuedBy        domain.UserID      `json:"issued_by"`
	Location        string             `json:"location"`
	DriverSignature string             `json:"driver_signature"`
}

// DisputeRequest is the body of POST /api/submit_dispute/. Ticket is the number
// exactly as the driver typed it.
type DisputeRequest struct {
	Ticket  string        `json:"ticket"`
	FiledBy domain.UserID `json:"filed_by"`
	Reason  string        `json:"reason"`
}

// PaymentRequest is sent as multipart/form-data to POST /api/add_payment/.
// ReceiptURI is the local file URI returned by the photo picker.
type PaymentRequest struct {
	TicketID   string
	UserID     domain.UserID
	Amount     domain.Amount
	ReceiptURI string
}

// ProfileUpdate is the body of PUT /api/user_profile/{id}/. Password is sent only
// when the user typed a new one.
type ProfileUpdate struct {
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password,omitempty"`
}
