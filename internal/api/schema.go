package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"tcis/pkg/validation"
)

var errNotArray = errors.New("expected a JSON array")

func errMissingField(field string) error {
	return fmt.Errorf("missing field %q", field)
}

// decodeObject returns a decoder that fills dst and validates it against its tags.
func decodeObject[T any](dst *T) func([]byte) error {
	return func(body []byte) error {
		if err := json.Unmarshal(body, dst); err != nil {
			return err
		}
		return validation.Validate(dst)
	}
}

// decodeList returns a decoder that requires a JSON array and validates each element.
// An empty array is valid and decodes to a non-nil empty slice.
func decodeList[T any](dst *[]T) func([]byte) error {
	return func(body []byte) error {
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return errNotArray
		}
		items := make([]T, 0)
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		if err := validation.ValidateEach(items); err != nil {
			return err
		}
		*dst = items
		return nil
	}
}
