package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	dErrors "tcis/pkg/domain-errors"
)

// Amount is a money value kept as the decimal text the backend sent.
// The backend serializes decimals either as JSON strings ("500.00") or numbers (500);
// both decode, and the client never does arithmetic on it.
type Amount string

// ParseAmount validates user-entered decimal text.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "amount cannot be empty")
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid amount")
	}
	return Amount(s), nil
}

func (a Amount) String() string { return string(a) }

// IsZero reports whether no amount is known.
func (a Amount) IsZero() bool { return a == "" }

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "amount must be a number or decimal string")
	}
	*a = Amount(n.String())
	return nil
}
