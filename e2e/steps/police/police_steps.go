package police

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"tcis/e2e/steps/common"
	"tcis/internal/screens"
	"tcis/pkg/domain"
)

// Signature is a minimal PNG data URI standing in for the signature pad output.
const Signature = "data:image/png;base64,iVBORw0KGgo="

// RegisterSteps registers the police drawer steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc common.TestContext) {
	steps := &policeSteps{tc: tc}

	ctx.Step(`^I fill a ticket for plate "([^"]*)" against driver (\d+) for violation (\d+)$`, steps.fillTicket)
	ctx.Step(`^the driver signs the ticket$`, steps.sign)
	ctx.Step(`^I submit the ticket$`, steps.submit)
	ctx.Step(`^the ticket fine should be prefilled with "([^"]*)"$`, steps.finePrefilled)
	ctx.Step(`^the backend should hold (\d+) tickets? issued by officer (\d+)$`, steps.ticketsIssuedBy)
	ctx.Step(`^the dashboard should count (\d+) total and (\d+) pending tickets$`, steps.dashboardCounts)
	ctx.Step(`^I change my first name to "([^"]*)"$`, steps.changeFirstName)
	ctx.Step(`^I save my profile$`, steps.saveProfile)
	ctx.Step(`^the profile form should show first name "([^"]*)"$`, steps.formFirstName)
	ctx.Step(`^the session display name should be "([^"]*)"$`, steps.displayName)
}

type policeSteps struct {
	tc common.TestContext
}

func (s *policeSteps) addTicket() (*screens.AddTicket, error) {
	screen, ok := s.tc.Screen().(*screens.AddTicket)
	if !ok {
		return nil, fmt.Errorf("not on the add ticket screen")
	}
	return screen, nil
}

func (s *policeSteps) fillTicket(_ context.Context, plate string, driverID, violationID int64) error {
	screen, err := s.addTicket()
	if err != nil {
		return err
	}
	f := screen.Form()
	f.LicenseNo = "N01-23-456789"
	f.PlateNumber = plate
	f.Location = "EDSA"
	screen.SetForm(f)
	screen.SelectDriver(domain.UserID(driverID))
	return screen.SelectViolation(domain.ViolationID(violationID))
}

func (s *policeSteps) sign(context.Context) error {
	screen, err := s.addTicket()
	if err != nil {
		return err
	}
	screen.CaptureSignature(Signature)
	return nil
}

func (s *policeSteps) submit(context.Context) error {
	screen, err := s.addTicket()
	if err != nil {
		return err
	}
	s.tc.SetLastError(screen.Submit())
	return nil
}

func (s *policeSteps) finePrefilled(_ context.Context, fine string) error {
	screen, err := s.addTicket()
	if err != nil {
		return err
	}
	if got := screen.Form().Fine.String(); got != fine {
		return fmt.Errorf("expected fine %s but got %s", fine, got)
	}
	return nil
}

func (s *policeSteps) ticketsIssuedBy(_ context.Context, want int, officer int64) error {
	n := 0
	for _, t := range s.tc.Backend().Tickets() {
		if int64(t.IssuedBy) == officer {
			n++
		}
	}
	if n != want {
		return fmt.Errorf("expected %d tickets issued by %d but found %d", want, officer, n)
	}
	return nil
}

func (s *policeSteps) dashboardCounts(_ context.Context, total, pending int) error {
	screen, ok := s.tc.Screen().(*screens.PoliceDashboard)
	if !ok {
		return fmt.Errorf("not on the police dashboard")
	}
	c := screen.View().Counts
	if c.TotalTickets != total || c.PendingTickets != pending {
		return fmt.Errorf("expected %d/%d but dashboard shows %d/%d", total, pending, c.TotalTickets, c.PendingTickets)
	}
	return nil
}

func (s *policeSteps) profile() (*screens.Profile, error) {
	screen, ok := s.tc.Screen().(*screens.Profile)
	if !ok {
		return nil, fmt.Errorf("not on the profile screen")
	}
	return screen, nil
}

func (s *policeSteps) changeFirstName(_ context.Context, name string) error {
	screen, err := s.profile()
	if err != nil {
		return err
	}
	f := screen.Form()
	f.FirstName = name
	screen.SetForm(f)
	return nil
}

func (s *policeSteps) saveProfile(context.Context) error {
	screen, err := s.profile()
	if err != nil {
		return err
	}
	s.tc.SetLastError(screen.Save())
	return nil
}

func (s *policeSteps) formFirstName(_ context.Context, name string) error {
	screen, err := s.profile()
	if err != nil {
		return err
	}
	if got := screen.Form().FirstName; got != name {
		return fmt.Errorf("expected first name %q but form shows %q", name, got)
	}
	return nil
}

func (s *policeSteps) displayName(_ context.Context, name string) error {
	id, err := s.tc.Session().Identity()
	if err != nil {
		return err
	}
	if got := id.DisplayName(); got != name {
		return fmt.Errorf("expected %q but session shows %q", name, got)
	}
	return nil
}
