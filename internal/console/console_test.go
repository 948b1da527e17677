package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcis/internal/api"
	"tcis/internal/api/apitest"
	"tcis/internal/navigation"
	"tcis/internal/screens"
	"tcis/internal/session"
	"tcis/pkg/domain"
)

type harness struct {
	backend *apitest.Backend
	baseURL string
	nav     *navigation.Navigator
	session *session.Store
}

func newHarness(t *testing.T, entry domain.Role) *harness {
	t.Helper()
	backend, srv := apitest.NewServer(t)
	require.NoError(t, backend.SeedDemo())

	nav, err := navigation.New(entry)
	require.NoError(t, err)
	return &harness{backend: backend, baseURL: srv.URL, nav: nav, session: session.NewStore()}
}

// run feeds script to a fresh App and returns everything it printed.
func (h *harness) run(t *testing.T, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	deps := screens.Deps{
		API:       api.NewHTTPClient(h.baseURL),
		Session:   h.session,
		Navigator: h.nav,
	}
	app := New(deps, strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func TestOfficerSignsInAndSeesDashboard(t *testing.T) {
	h := newHarness(t, domain.RolePolice)

	out := h.run(t, "login officer1 password123", "quit")

	assert.Contains(t, out, "== Dashboard ==")
	assert.Contains(t, out, "Welcome, Jane Doe")
	assert.Contains(t, out, "Total tickets: 3 | Pending: 3 | Resolved disputes: 0")
	assert.Equal(t, navigation.PoliceMain, h.nav.Current().Stack)
}

func TestRoleMismatchStaysOnSignIn(t *testing.T) {
	h := newHarness(t, domain.RolePolice)

	out := h.run(t, "login driver1 password123", "quit")

	assert.Contains(t, out, "[Login Failed] You are not registered as a Police")
	assert.Equal(t, navigation.State{Stack: navigation.PoliceAuth, Screen: navigation.SignIn}, h.nav.Current())
}

func TestDriverFlow(t *testing.T) {
	h := newHarness(t, domain.RolePolice)

	out := h.run(t,
		"role driver",
		"login driver1 password123",
		"open active tickets",
		"select 1",
		"go file disputes",
		"dispute 1 wrong plate",
		"go my disputes",
		"quit",
	)

	assert.Contains(t, out, "== Driver Dashboard ==")
	assert.Contains(t, out, "== Active Tickets ==")
	assert.Contains(t, out, "-- Ticket #1 --")
	assert.Contains(t, out, "[Dispute Submitted]")
	assert.Contains(t, out, "wrong plate [Pending]")
	require.Len(t, h.backend.Disputes(), 1)
}

func TestAddTicketWithoutSignatureSendsNothing(t *testing.T) {
	h := newHarness(t, domain.RolePolice)
	h.run(t, "login officer1 password123", "go add ticket", "quit")
	h.backend.ResetRequests()

	out := h.run(t, "set license N01", "submit", "quit")

	assert.Contains(t, out, "[Error] Driver signature is required")
	assert.Zero(t, h.backend.Requests("POST", api.PathAddTicket))
}

func TestLogoutReturnsToSignIn(t *testing.T) {
	h := newHarness(t, domain.RolePolice)

	out := h.run(t, "login officer1 password123", "go profile", "logout", "quit")

	assert.Contains(t, out, "[Logged Out] You have been logged out successfully.")
	assert.Equal(t, navigation.State{Stack: navigation.PoliceAuth, Screen: navigation.SignIn}, h.nav.Current())
	_, ok := h.session.Current()
	assert.False(t, ok)
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t, domain.RolePolice)

	out := h.run(t, "fly", "help", "quit")

	assert.Contains(t, out, `unknown command "fly", try help`)
	assert.Contains(t, out, "login <username> <password>")
}
