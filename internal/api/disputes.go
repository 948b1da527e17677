package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"tcis/internal/api/models"
	"tcis/pkg/domain"
)

// SubmitDispute files a dispute. Only 201 is success; the receipt message may be empty.
func (c *HTTPClient) SubmitDispute(ctx context.Context, req models.DisputeRequest) (*models.DisputeReceipt, error) {
	cl, err := jsonCall(OpSubmitDispute, http.MethodPost, PathSubmitDispute, req, statusCreated)
	if err != nil {
		return nil, err
	}
	var out models.DisputeReceipt
	cl.decode = func(body []byte) error {
		if len(bytes.TrimSpace(body)) == 0 {
			return nil
		}
		// The created dispute may come back instead of a message; only the message matters.
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			return err
		}
		if msg, ok := raw["message"]; ok {
			return json.Unmarshal(msg, &out.Message)
		}
		return nil
	}
	if err := c.do(ctx, cl); err != nil {
		return nil, err
	}
	return &out, nil
}

// Disputes lists the disputes filed by a driver.
func (c *HTTPClient) Disputes(ctx context.Context, userID domain.UserID) ([]models.Dispute, error) {
	var out []models.Dispute
	err := c.do(ctx, call{
		operation: OpDisputes,
		method:    http.MethodGet,
		path:      path(PathDisputes, userID),
		success:   statusOK,
		decode:    decodeList(&out),
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
