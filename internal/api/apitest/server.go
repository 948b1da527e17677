package apitest

import (
	"net/http/httptest"
	"testing"
	"time"

	"tcis/internal/api/models"
	"tcis/pkg/domain"
)

// NewServer starts a Backend behind an httptest server that closes with the test.
func NewServer(tb testing.TB, opts ...Option) (*Backend, *httptest.Server) {
	tb.Helper()
	b := New(opts...)
	srv := httptest.NewServer(b.Router())
	tb.Cleanup(srv.Close)
	return b, srv
}

// Demo accounts created by SeedDemo.
const (
	DemoPassword      = "password123"
	DemoOfficerID     = domain.UserID(7)
	DemoDriverID      = domain.UserID(42)
	DemoOfficerHandle = "officer1"
	DemoDriverHandle  = "driver1"
)

// SeedDemo adds one police user, one driver and a few tickets between them.
func (b *Backend) SeedDemo() error {
	if _, err := b.AddUser(models.User{
		ID: DemoOfficerID, FirstName: "Jane", LastName: "Doe",
		Username: DemoOfficerHandle, MobileNumber: "09170000007", Role: domain.RolePolice,
	}, DemoPassword); err != nil {
		return err
	}
	if _, err := b.AddUser(models.User{
		ID: DemoDriverID, FirstName: "Juan", LastName: "Cruz",
		Username: DemoDriverHandle, MobileNumber: "09170000042", Role: domain.RoleDriver,
	}, DemoPassword); err != nil {
		return err
	}

	now := b.now().UTC()
	for i, v := range DefaultViolations[:3] {
		b.IssueTicket(models.Ticket{
			LicenseNo:        "N01-23-45678" + string(rune('0'+i)),
			PlateNumber:      "ABC 12" + string(rune('0'+i)) + "4",
			ViolationDetails: models.ViolationRef{ID: v.ID, Name: v.Name, PenaltyAmount: v.PenaltyAmount},
			Violation:        v.Name,
			FineAmount:       v.PenaltyAmount,
			DueDate:          domain.NewDate(now.AddDate(0, 0, 30)),
			IssuedBy:         DemoOfficerID,
			Location:         "EDSA",
			DriverSignature:  "data:image/png;base64,iVBORw0KGgo=",
			CreatedAt:        now.Add(-time.Duration(i) * 24 * time.Hour),
		}, DemoDriverID)
	}
	return nil
}
