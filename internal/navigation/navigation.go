// Package navigation is the role-scoped screen graph: one auth stack and one drawer per
// role, with routing after sign-in decided by the role the backend returned.
package navigation

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"tcis/internal/platform/metrics"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
)

// Stack is one of the four top-level states of the graph.
type Stack int

const (
	StackUnknown Stack = iota
	PoliceAuth
	DriverAuth
	PoliceMain
	DriverMain
)

func (s Stack) String() string {
	switch s {
	case PoliceAuth:
		return "PoliceAuth"
	case DriverAuth:
		return "DriverAuth"
	case PoliceMain:
		return "PoliceMain"
	case DriverMain:
		return "DriverMain"
	default:
		return "Unknown"
	}
}

// IsAuth reports whether s is a signed-out stack.
func (s Stack) IsAuth() bool { return s == PoliceAuth || s == DriverAuth }

// IsMain reports whether s is a signed-in drawer.
func (s Stack) IsMain() bool { return s == PoliceMain || s == DriverMain }

// Role returns the role a stack belongs to.
func (s Stack) Role() domain.Role {
	switch s {
	case PoliceAuth, PoliceMain:
		return domain.RolePolice
	case DriverAuth, DriverMain:
		return domain.RoleDriver
	default:
		return domain.RoleUnknown
	}
}

// Screen names a sub-screen of an auth stack or an entry of a drawer.
type Screen string

const (
	SignIn Screen = "Sign In"
	SignUp Screen = "Sign Up"

	Dashboard     Screen = "Dashboard"
	AddTicket     Screen = "Add Ticket"
	SearchTickets Screen = "Search Tickets"
	TicketsList   Screen = "Tickets List"
	Profile       Screen = "Profile"

	DriverDashboard Screen = "Driver Dashboard"
	ActiveTickets   Screen = "Active Tickets"
	FileDisputes    Screen = "File Disputes"
	MyDisputes      Screen = "My Disputes"
	Payment         Screen = "Payment"
)

var (
	policeDrawer = []Screen{Dashboard, AddTicket, SearchTickets, TicketsList, Profile}
	driverDrawer = []Screen{DriverDashboard, ActiveTickets, FileDisputes, MyDisputes, Payment, Profile}
)

// Drawer returns the screens reachable from a role's drawer in display order.
func Drawer(role domain.Role) ([]Screen, error) {
	switch role {
	case domain.RolePolice:
		return slices.Clone(policeDrawer), nil
	case domain.RoleDriver:
		return slices.Clone(driverDrawer), nil
	default:
		return nil, unknownRole(role)
	}
}

// AuthStack returns the signed-out stack of role.
func AuthStack(role domain.Role) (Stack, error) {
	switch role {
	case domain.RolePolice:
		return PoliceAuth, nil
	case domain.RoleDriver:
		return DriverAuth, nil
	default:
		return StackUnknown, unknownRole(role)
	}
}

// MainStack returns the drawer stack of role and its initial screen.
func MainStack(role domain.Role) (Stack, Screen, error) {
	switch role {
	case domain.RolePolice:
		return PoliceMain, Dashboard, nil
	case domain.RoleDriver:
		return DriverMain, DriverDashboard, nil
	default:
		return StackUnknown, "", unknownRole(role)
	}
}

func unknownRole(role domain.Role) error {
	return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown role %q", role.String()))
}

// State is where the user is in the graph.
type State struct {
	Stack  Stack
	Screen Screen
}

func (s State) String() string {
	return s.Stack.String() + "/" + string(s.Screen)
}

// Transition is delivered to listeners after the state changed.
type Transition struct {
	From State
	To   State
}

// Listener observes transitions. Listeners run synchronously on the caller's goroutine
// and must not call back into the Navigator.
type Listener func(Transition)

// Navigator holds the current state and applies transitions. There is no terminal
// state: logout always leads back to an auth stack.
type Navigator struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger for transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// WithMetrics sets the metrics used to count transitions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Navigator) {
		n.metrics = m
	}
}

// New starts at the sign-in screen of entry's auth stack.
func New(entry domain.Role, opts ...Option) (*Navigator, error) {
	stack, err := AuthStack(entry)
	if err != nil {
		return nil, err
	}
	n := &Navigator{
		state:     State{Stack: stack, Screen: SignIn},
		listeners: make(map[int]Listener),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Current returns the current state.
func (n *Navigator) Current() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Subscribe registers l and returns a function that removes it.
func (n *Navigator) Subscribe(l Listener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = l
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

// ShowSignUp moves to the sign-up screen of the current auth stack.
func (n *Navigator) ShowSignUp() error {
	return n.apply("show_sign_up", func(cur State) (State, error) {
		if !cur.Stack.IsAuth() {
			return State{}, notIn(cur, "an auth stack")
		}
		return State{Stack: cur.Stack, Screen: SignUp}, nil
	})
}

// ShowSignIn moves to the sign-in screen of the current auth stack.
func (n *Navigator) ShowSignIn() error {
	return n.apply("show_sign_in", func(cur State) (State, error) {
		if !cur.Stack.IsAuth() {
			return State{}, notIn(cur, "an auth stack")
		}
		return State{Stack: cur.Stack, Screen: SignIn}, nil
	})
}

// SwitchAuth moves to the sign-in screen of role's auth stack.
func (n *Navigator) SwitchAuth(role domain.Role) error {
	return n.apply("switch_auth", func(cur State) (State, error) {
		if !cur.Stack.IsAuth() {
			return State{}, notIn(cur, "an auth stack")
		}
		stack, err := AuthStack(role)
		if err != nil {
			return State{}, err
		}
		return State{Stack: stack, Screen: SignIn}, nil
	})
}

// SignedIn routes to the drawer of the role the backend returned.
func (n *Navigator) SignedIn(role domain.Role) error {
	return n.enterMain("signed_in", role)
}

// SignedUp routes a freshly registered user straight into their drawer.
func (n *Navigator) SignedUp(role domain.Role) error {
	return n.enterMain("signed_up", role)
}

func (n *Navigator) enterMain(event string, role domain.Role) error {
	return n.apply(event, func(cur State) (State, error) {
		if !cur.Stack.IsAuth() {
			return State{}, notIn(cur, "an auth stack")
		}
		stack, screen, err := MainStack(role)
		if err != nil {
			return State{}, err
		}
		return State{Stack: stack, Screen: screen}, nil
	})
}

// Open moves to screen within the current drawer. Screens of the other role's drawer
// are rejected with CodeForbidden.
func (n *Navigator) Open(screen Screen) error {
	return n.apply("open", func(cur State) (State, error) {
		if !cur.Stack.IsMain() {
			return State{}, notIn(cur, "a drawer")
		}
		drawer, err := Drawer(cur.Stack.Role())
		if err != nil {
			return State{}, err
		}
		if !slices.Contains(drawer, screen) {
			return State{}, dErrors.New(dErrors.CodeForbidden,
				fmt.Sprintf("%s is not available to %s users", screen, cur.Stack.Role()))
		}
		return State{Stack: cur.Stack, Screen: screen}, nil
	})
}

// LoggedOut returns to the sign-in screen of the drawer's role.
func (n *Navigator) LoggedOut() error {
	return n.apply("logged_out", func(cur State) (State, error) {
		if !cur.Stack.IsMain() {
			return State{}, notIn(cur, "a drawer")
		}
		stack, err := AuthStack(cur.Stack.Role())
		if err != nil {
			return State{}, err
		}
		return State{Stack: stack, Screen: SignIn}, nil
	})
}

func notIn(cur State, where string) error {
	return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("cannot do that from %s: not in %s", cur, where))
}

// apply computes the next state under the lock and notifies listeners after releasing it.
func (n *Navigator) apply(event string, next func(State) (State, error)) error {
	n.mu.Lock()
	from := n.state
	to, err := next(from)
	if err != nil {
		n.mu.Unlock()
		n.logger.Warn("navigation rejected", "event", event, "from", from.String(), "error", err)
		return err
	}
	n.state = to
	listeners := make([]Listener, 0, len(n.listeners))
	ids := make([]int, 0, len(n.listeners))
	for id := range n.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, n.listeners[id])
	}
	n.mu.Unlock()

	n.metrics.RecordTransition(from.Stack.String(), to.Stack.String())
	n.logger.Debug("navigation", "event", event, "from", from.String(), "to", to.String())

	t := Transition{From: from, To: to}
	for _, l := range listeners {
		l(t)
	}
	return nil
}
