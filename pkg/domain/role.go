package domain

import (
	"encoding/json"
	"strings"

	dErrors "tcis/pkg/domain-errors"
)

// Role is the closed set of account kinds. The zero value is not a valid role.
type Role int

const (
	RoleUnknown Role = iota
	RolePolice
	RoleDriver
)

// Roles lists every valid role in display order.
var Roles = []Role{RolePolice, RoleDriver}

// ParseRole accepts the wire spelling case-insensitively ("Police", "police", "DRIVER").
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "police":
		return RolePolice, nil
	case "driver":
		return RoleDriver, nil
	case "":
		return RoleUnknown, dErrors.New(dErrors.CodeInvalidInput, "role is required")
	default:
		return RoleUnknown, dErrors.New(dErrors.CodeInvalidInput, "unknown role: "+s)
	}
}

// String returns the canonical wire spelling.
func (r Role) String() string {
	switch r {
	case RolePolice:
		return "Police"
	case RoleDriver:
		return "Driver"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	return r == RolePolice || r == RoleDriver
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "cannot encode unknown role")
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "role must be a string")
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
