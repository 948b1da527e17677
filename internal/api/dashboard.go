package api

import (
	"context"
	"net/http"

	"tcis/internal/api/models"
	"tcis/pkg/domain"
)

// PoliceCounts returns the stat boxes of the police dashboard.
func (c *HTTPClient) PoliceCounts(ctx context.Context, userID domain.UserID) (*models.TicketCounts, error) {
	var out models.TicketCounts
	err := c.do(ctx, call{
		operation: OpPoliceCounts,
		method:    http.MethodGet,
		path:      path(PathPoliceCounts, userID),
		success:   statusOK,
		decode:    decodeObject(&out),
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentActivity returns the latest activity lines of a police user.
func (c *HTTPClient) RecentActivity(ctx context.Context, userID domain.UserID) ([]models.Activity, error) {
	var out []models.Activity
	err := c.do(ctx, call{
		operation: OpRecentActivity,
		method:    http.MethodGet,
		path:      path(PathRecentActivity, userID),
		success:   statusOK,
		decode:    decodeList(&out),
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
