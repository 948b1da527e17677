package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cucumber/godog"

	"tcis/e2e/steps/common"
	"tcis/internal/api/models"
	"tcis/internal/screens"
)

// RegisterSteps registers the driver drawer steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc common.TestContext) {
	steps := &driverSteps{tc: tc}

	ctx.Step(`^I dispute ticket "([^"]*)" because "([^"]*)"$`, steps.dispute)
	ctx.Step(`^the dispute form should be empty$`, steps.disputeFormEmpty)
	ctx.Step(`^the backend should hold a dispute on ticket (\d+) filed by (\d+) saying "([^"]*)"$`, steps.disputeStored)
	ctx.Step(`^I look up the fine of ticket "([^"]*)"$`, steps.lookupFine)
	ctx.Step(`^the payment fine should be "([^"]*)"$`, steps.paymentFine)
	ctx.Step(`^I attach a receipt photo$`, steps.attachReceipt)
	ctx.Step(`^I pay$`, steps.pay)
	ctx.Step(`^ticket (\d+) should be paid$`, steps.ticketPaid)
}

type driverSteps struct {
	tc common.TestContext
}

func (s *driverSteps) dispute(_ context.Context, ticket, reason string) error {
	screen, ok := s.tc.Screen().(*screens.Dispute)
	if !ok {
		return fmt.Errorf("not on the dispute screen")
	}
	screen.SetForm(screens.DisputeForm{TicketNumber: ticket, Reason: reason})
	s.tc.SetLastError(screen.Submit())
	return nil
}

func (s *driverSteps) disputeFormEmpty(context.Context) error {
	screen, ok := s.tc.Screen().(*screens.Dispute)
	if !ok {
		return fmt.Errorf("not on the dispute screen")
	}
	if f := screen.Form(); f != (screens.DisputeForm{}) {
		return fmt.Errorf("expected empty form but got %+v", f)
	}
	return nil
}

func (s *driverSteps) disputeStored(_ context.Context, ticket, filedBy int64, reason string) error {
	for _, d := range s.tc.Backend().Disputes() {
		if int64(d.Ticket) == ticket && int64(d.FiledBy) == filedBy && d.Reason == reason {
			return nil
		}
	}
	return fmt.Errorf("no dispute on ticket %d by %d: %+v", ticket, filedBy, s.tc.Backend().Disputes())
}

func (s *driverSteps) payment() (*screens.Payment, error) {
	screen, ok := s.tc.Screen().(*screens.Payment)
	if !ok {
		return nil, fmt.Errorf("not on the payment screen")
	}
	return screen, nil
}

func (s *driverSteps) lookupFine(_ context.Context, ticket string) error {
	screen, err := s.payment()
	if err != nil {
		return err
	}
	screen.SetTicketID(ticket)
	s.tc.SetLastError(screen.LookupFine())
	return nil
}

func (s *driverSteps) paymentFine(_ context.Context, fine string) error {
	screen, err := s.payment()
	if err != nil {
		return err
	}
	if got := screen.Form().Fine.String(); got != fine {
		return fmt.Errorf("expected fine %s but got %s", fine, got)
	}
	return nil
}

func (s *driverSteps) attachReceipt(context.Context) error {
	screen, err := s.payment()
	if err != nil {
		return err
	}
	dir, err := os.MkdirTemp("", "tcis-receipt-")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "receipt.jpg")
	if err := os.WriteFile(path, []byte("\xff\xd8\xff\xe0receipt"), 0o600); err != nil {
		return err
	}
	screen.PickReceipt("file://" + path)
	return nil
}

func (s *driverSteps) pay(context.Context) error {
	screen, err := s.payment()
	if err != nil {
		return err
	}
	s.tc.SetLastError(screen.Submit())
	return nil
}

func (s *driverSteps) ticketPaid(_ context.Context, id int64) error {
	for _, t := range s.tc.Backend().Tickets() {
		if int64(t.ID) == id {
			if t.Status != models.TicketStatusPaid {
				return fmt.Errorf("ticket %d is %s", id, t.Status)
			}
			return nil
		}
	}
	return fmt.Errorf("ticket %d not found", id)
}
