package api

import (
	"bytes"
	"context"
	"net/http"

	"tcis/internal/api/models"
	"tcis/pkg/domain"
)

// Profile fetches the editable profile of a user.
func (c *HTTPClient) Profile(ctx context.Context, userID domain.UserID) (*models.Profile, error) {
	var out models.Profile
	err := c.do(ctx, call{
		operation: OpProfile,
		method:    http.MethodGet,
		path:      path(PathUserProfile, userID),
		success:   statusOK,
		decode:    decodeObject(&out),
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile replaces the editable profile fields and returns what the backend stored.
// A 200 with an empty body is a success with a nil profile.
func (c *HTTPClient) UpdateProfile(ctx context.Context, userID domain.UserID, update models.ProfileUpdate) (*models.Profile, error) {
	cl, err := jsonCall(OpUpdateProfile, http.MethodPut, path(PathUserProfile, userID), update, statusOK)
	if err != nil {
		return nil, err
	}
	var (
		out   models.Profile
		empty bool
	)
	decode := decodeObject(&out)
	cl.decode = func(body []byte) error {
		if len(bytes.TrimSpace(body)) == 0 {
			empty = true
			return nil
		}
		return decode(body)
	}
	if err := c.do(ctx, cl); err != nil {
		return nil, err
	}
	if empty {
		return nil, nil
	}
	return &out, nil
}
