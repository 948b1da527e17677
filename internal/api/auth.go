package api

import (
	"context"
	"net/http"

	"tcis/internal/api/models"
)

// Login authenticates a user. Only 200 is success; the caller compares the returned
// role with the requested one.
func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	cl, err := jsonCall(OpLogin, http.MethodPost, PathLogin, req, statusOK)
	if err != nil {
		return nil, err
	}
	var out models.LoginResponse
	cl.decode = decodeObject(&out)
	if err := c.do(ctx, cl); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup creates an account. Only 201 is success.
func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	cl, err := jsonCall(OpSignup, http.MethodPost, PathSignup, req, statusCreated)
	if err != nil {
		return nil, err
	}
	var out models.SignupResponse
	cl.decode = decodeObject(&out)
	if err := c.do(ctx, cl); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout notifies the backend. Any HTTP response counts; only transport failures error.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, call{
		operation: OpLogout,
		method:    http.MethodPost,
		path:      PathLogout,
	})
}
