// Package domain provides the closed role enumeration and typed identifiers shared by
// the API contract, the session and the screens.
package domain

import (
	"strconv"
	"strings"

	dErrors "tcis/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a UserID where a TicketID is expected.
type (
	UserID      int64
	TicketID    int64
	DisputeID   int64
	ViolationID int64
)

// Parse functions - use at trust boundaries (form inputs, route segments).

func ParseUserID(s string) (UserID, error) {
	id, err := parseID(s, "user ID")
	return UserID(id), err
}

func ParseTicketID(s string) (TicketID, error) {
	id, err := parseID(s, "ticket ID")
	return TicketID(id), err
}

func ParseViolationID(s string) (ViolationID, error) {
	id, err := parseID(s, "violation ID")
	return ViolationID(id), err
}

// String methods - for paths, form fields and logging.

func (id UserID) String() string      { return strconv.FormatInt(int64(id), 10) }
func (id TicketID) String() string    { return strconv.FormatInt(int64(id), 10) }
func (id DisputeID) String() string   { return strconv.FormatInt(int64(id), 10) }
func (id ViolationID) String() string { return strconv.FormatInt(int64(id), 10) }

// IsNil reports whether the identifier was never assigned.
func (id UserID) IsNil() bool   { return id == 0 }
func (id TicketID) IsNil() bool { return id == 0 }

func parseID(s, label string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" must be positive")
	}
	return n, nil
}
