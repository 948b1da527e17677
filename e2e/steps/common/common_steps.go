package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"tcis/internal/api/apitest"
	"tcis/internal/api/models"
	"tcis/internal/navigation"
	"tcis/internal/screens"
	"tcis/internal/session"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
)

// Alert is one blocking alert shown during a scenario.
type Alert struct {
	Title   string
	Message string
}

// TestContext is what step definitions need from the scenario state.
type TestContext interface {
	Context() context.Context
	Backend() *apitest.Backend
	Navigator() *navigation.Navigator
	Session() *session.Store
	Deps() screens.Deps
	Alerts() []Alert
	Show(s screens.Screen) error
	Screen() screens.Screen
	LastError() error
	SetLastError(err error)
}

// RegisterSteps registers the backend, navigation and alert steps shared by all features.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	// Backend setup
	ctx.Step(`^the citation backend is running$`, steps.backendIsRunning)
	ctx.Step(`^a (police|driver) account (\d+) "([^"]*)" with password "([^"]*)" named "([^"]*)" "([^"]*)"$`, steps.accountExists)
	ctx.Step(`^ticket (\d+) for (\d+\.\d{2}) is issued to driver (\d+) by officer (\d+)$`, steps.ticketIssued)
	ctx.Step(`^the backend answers the next "([A-Z]+)" to "([^"]*)" with status (\d+) and body '([^']*)'$`, steps.stubNext)

	// Navigation
	ctx.Step(`^I open the "([^"]*)" screen$`, steps.openScreen)
	ctx.Step(`^I should be on "([^"]*)" in the (PoliceAuth|DriverAuth|PoliceMain|DriverMain) stack$`, steps.shouldBeOn)

	// Alerts and results
	ctx.Step(`^I should see the alert "([^"]*)" saying "([^"]*)"$`, steps.shouldSeeAlert)
	ctx.Step(`^no alert should be shown$`, steps.noAlert)
	ctx.Step(`^the action should fail with "([a-z_]+)"$`, steps.actionFailedWith)
	ctx.Step(`^the screen should say "([^"]*)"$`, steps.screenShouldSay)
	ctx.Step(`^the backend should have received (\d+) "([A-Z]+)" requests? to "([^"]*)"$`, steps.requestCount)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) backendIsRunning(context.Context) error {
	if s.tc.Backend() == nil {
		return fmt.Errorf("backend not started")
	}
	return nil
}

func (s *commonSteps) accountExists(_ context.Context, role string, id int64, username, password, first, last string) error {
	r, err := domain.ParseRole(role)
	if err != nil {
		return err
	}
	_, err = s.tc.Backend().AddUser(models.User{
		ID:           domain.UserID(id),
		FirstName:    first,
		LastName:     last,
		Username:     username,
		MobileNumber: "0917" + fmt.Sprint(id),
		Role:         r,
	}, password)
	return err
}

func (s *commonSteps) ticketIssued(_ context.Context, id int64, fine string, driverID, officerID int64) error {
	s.tc.Backend().IssueTicket(models.Ticket{
		ID:               domain.TicketID(id),
		LicenseNo:        "N01-23-456789",
		PlateNumber:      "ABC 1234",
		ViolationDetails: models.ViolationRef{ID: 1, Name: "Speeding", PenaltyAmount: domain.Amount(fine)},
		FineAmount:       domain.Amount(fine),
		Status:           models.TicketStatusPending,
		IssuedBy:         domain.UserID(officerID),
		Location:         "EDSA",
	}, domain.UserID(driverID))
	return nil
}

func (s *commonSteps) stubNext(_ context.Context, method, path string, status int, body string) error {
	s.tc.Backend().Stub(method, path, status, body)
	return nil
}

func (s *commonSteps) openScreen(_ context.Context, name string) error {
	screen := navigation.Screen(name)
	if err := s.tc.Navigator().Open(screen); err != nil {
		return err
	}
	return OpenController(s.tc, screen)
}

// OpenController mounts the controller for screen, recording a mount failure as
// the last error rather than failing the step.
func OpenController(tc TestContext, screen navigation.Screen) error {
	ctrl, err := Build(tc.Deps(), screen)
	if err != nil {
		return err
	}
	tc.SetLastError(tc.Show(ctrl))
	return nil
}

// Build creates the controller for screen.
func Build(deps screens.Deps, screen navigation.Screen) (screens.Screen, error) {
	switch screen {
	case navigation.SignIn:
		return screens.NewSignIn(deps), nil
	case navigation.SignUp:
		return screens.NewSignUp(deps), nil
	case navigation.Dashboard:
		return screens.NewPoliceDashboard(deps), nil
	case navigation.AddTicket:
		return screens.NewAddTicket(deps, nil), nil
	case navigation.SearchTickets:
		return screens.NewSearch(deps), nil
	case navigation.TicketsList:
		return screens.NewTicketsList(deps), nil
	case navigation.DriverDashboard:
		return screens.NewDriverDashboard(deps), nil
	case navigation.ActiveTickets:
		return screens.NewActiveTickets(deps), nil
	case navigation.FileDisputes:
		return screens.NewDispute(deps), nil
	case navigation.MyDisputes:
		return screens.NewMyDisputes(deps), nil
	case navigation.Payment:
		return screens.NewPayment(deps), nil
	case navigation.Profile:
		return screens.NewProfile(deps), nil
	default:
		return nil, fmt.Errorf("no controller for screen %q", screen)
	}
}

func (s *commonSteps) shouldBeOn(_ context.Context, screen, stack string) error {
	cur := s.tc.Navigator().Current()
	if string(cur.Screen) != screen || cur.Stack.String() != stack {
		return fmt.Errorf("expected %s/%s but at %s", stack, screen, cur)
	}
	return nil
}

func (s *commonSteps) shouldSeeAlert(_ context.Context, title, message string) error {
	alerts := s.tc.Alerts()
	if len(alerts) == 0 {
		return fmt.Errorf("expected alert %q/%q but none was shown", title, message)
	}
	last := alerts[len(alerts)-1]
	if last.Title != title || last.Message != message {
		return fmt.Errorf("expected alert %q/%q but got %q/%q", title, message, last.Title, last.Message)
	}
	return nil
}

func (s *commonSteps) noAlert(context.Context) error {
	if alerts := s.tc.Alerts(); len(alerts) > 0 {
		return fmt.Errorf("expected no alert but got %v", alerts)
	}
	return nil
}

func (s *commonSteps) actionFailedWith(_ context.Context, code string) error {
	err := s.tc.LastError()
	if !dErrors.HasCode(err, dErrors.Code(code)) {
		return fmt.Errorf("expected %s error but got %v", code, err)
	}
	return nil
}

func (s *commonSteps) screenShouldSay(_ context.Context, text string) error {
	got := ScreenMessage(s.tc.Screen())
	if got != text {
		return fmt.Errorf("expected screen message %q but got %q", text, got)
	}
	return nil
}

// ScreenMessage returns the "no data" line a list screen displays, if any.
func ScreenMessage(screen screens.Screen) string {
	switch c := screen.(type) {
	case *screens.ActiveTickets:
		return c.View().Message
	case *screens.MyDisputes:
		return c.View().Message
	case *screens.TicketsList:
		return c.View().Message
	case *screens.Search:
		return c.View().Message
	case *screens.PoliceDashboard:
		return strings.Join(c.View().Activity, "\n")
	default:
		return ""
	}
}

func (s *commonSteps) requestCount(_ context.Context, want int, method, path string) error {
	if method != http.MethodGet && method != http.MethodPost && method != http.MethodPut {
		return fmt.Errorf("unsupported method %s", method)
	}
	if got := s.tc.Backend().Requests(method, path); got != want {
		return fmt.Errorf("expected %d %s %s requests but got %d", want, method, path, got)
	}
	return nil
}
