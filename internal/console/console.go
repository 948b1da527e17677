// Package console is a line-oriented front end for the citation client. It renders
// the current screen, reads one command per line and drives the screen controllers
// and the navigation graph.
package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"tcis/internal/navigation"
	"tcis/internal/screens"
	dErrors "tcis/pkg/domain-errors"
)

// ErrQuit is returned by a command that ends the session.
var ErrQuit = errors.New("quit")

// App owns the controllers of the current stack. Controllers stay alive while their
// stack is shown, the way drawer screens do, and are remounted on every visit.
type App struct {
	deps      screens.Deps
	presenter *Presenter
	logger    *slog.Logger

	in  *bufio.Scanner
	ctx context.Context

	stack       navigation.Stack
	controllers map[navigation.Screen]screens.Screen
	shown       navigation.State
}

// New builds an App that reads commands from in and writes screens and alerts to out.
// deps.Presenter is replaced by the console presenter.
func New(deps screens.Deps, in io.Reader, out io.Writer) *App {
	p := NewPresenter(out)
	deps.Presenter = p
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &App{
		deps:        deps,
		presenter:   p,
		logger:      logger,
		in:          bufio.NewScanner(in),
		controllers: make(map[navigation.Screen]screens.Screen),
	}
}

// Run processes commands until input ends, ctx is canceled or the user quits.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	unsubscribe := a.deps.Navigator.Subscribe(func(t navigation.Transition) {
		a.logger.Debug("screen changed", "from", t.From.String(), "to", t.To.String())
	})
	defer unsubscribe()
	defer a.unmountAll()

	a.sync()
	for {
		a.render()
		a.presenter.Printf("%s> ", a.shown.Screen)

		line, ok := a.readLine(ctx)
		if !ok {
			return ctx.Err()
		}
		if line == "" {
			continue
		}
		err := a.dispatch(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			a.report(err)
		}
		a.sync()
	}
}

// readLine returns false at end of input or cancellation.
func (a *App) readLine(ctx context.Context) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// report prints errors the controllers did not already alert.
func (a *App) report(err error) {
	switch {
	case dErrors.HasCode(err, dErrors.CodeValidation),
		dErrors.HasCode(err, dErrors.CodeRoleMismatch),
		dErrors.HasCode(err, dErrors.CodeUnmounted):
		return
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		a.presenter.Printf("! %s\n", de.Message)
		return
	}
	a.logger.Debug("command failed", "error", err)
}

// sync mounts the controller of the navigator's current screen when it changed.
func (a *App) sync() {
	cur := a.deps.Navigator.Current()
	if cur == a.shown {
		return
	}
	if cur.Stack != a.stack {
		a.unmountAll()
		a.stack = cur.Stack
	}
	a.shown = cur

	ctrl, ok := a.controllers[cur.Screen]
	if !ok {
		ctrl = a.build(cur.Screen)
		a.controllers[cur.Screen] = ctrl
	}
	if err := ctrl.Mount(a.ctx); err != nil {
		a.logger.Debug("mount failed", "screen", string(cur.Screen), "error", err)
	}
}

func (a *App) unmountAll() {
	for _, c := range a.controllers {
		c.Unmount()
	}
	clear(a.controllers)
}

func (a *App) build(screen navigation.Screen) screens.Screen {
	switch screen {
	case navigation.SignIn:
		return screens.NewSignIn(a.deps)
	case navigation.SignUp:
		return screens.NewSignUp(a.deps)
	case navigation.Dashboard:
		return screens.NewPoliceDashboard(a.deps)
	case navigation.AddTicket:
		return screens.NewAddTicket(a.deps, a.refreshDashboard)
	case navigation.SearchTickets:
		return screens.NewSearch(a.deps)
	case navigation.TicketsList:
		return screens.NewTicketsList(a.deps)
	case navigation.DriverDashboard:
		return screens.NewDriverDashboard(a.deps)
	case navigation.ActiveTickets:
		return screens.NewActiveTickets(a.deps)
	case navigation.FileDisputes:
		return screens.NewDispute(a.deps)
	case navigation.MyDisputes:
		return screens.NewMyDisputes(a.deps)
	case navigation.Payment:
		return screens.NewPayment(a.deps)
	case navigation.Profile:
		return screens.NewProfile(a.deps)
	default:
		panic("console: no controller for screen " + string(screen))
	}
}

// refreshDashboard reloads the police dashboard after a ticket is issued.
func (a *App) refreshDashboard() {
	d, ok := a.controllers[navigation.Dashboard].(*screens.PoliceDashboard)
	if !ok || !d.Mounted() {
		return
	}
	if err := d.Refresh(); err != nil {
		a.logger.Debug("dashboard refresh failed", "error", err)
	}
}

// current returns the mounted controller of the shown screen.
func (a *App) current() screens.Screen {
	return a.controllers[a.shown.Screen]
}
