package screens

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"tcis/internal/api"
	"tcis/internal/api/models"
	"tcis/internal/navigation"
	"tcis/internal/printing"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
)

// Police screen messages.
const (
	MsgCountsFailed       = "Failed to fetch ticket counts."
	MsgNoRecentActivity   = "No recent activity available."
	MsgViolationsFailed   = "Unable to fetch violations. Please try again."
	MsgDriversFailed      = "Unable to fetch users. Please try again."
	MsgSignatureRequired  = "Driver signature is required"
	MsgTicketAdded        = "Ticket has been added successfully."
	MsgAddTicketFailed    = "Failed to add ticket."
	MsgDatesRequired      = "Please provide both start and end date"
	MsgNoTicketsInRange   = "No tickets found for the selected date range."
	MsgTicketsFailed      = "Failed to fetch tickets."
	MsgNoTickets          = "No tickets available."
	MsgTicketNotFound     = "Ticket not found."
	MsgTicketPrinted      = "Ticket sent to the printer."
	MsgPrintFailed        = "Failed to print ticket."
	MsgUnknownViolation   = "Please select a valid violation."
)

// PoliceDashboardView is what the dashboard displays.
type PoliceDashboardView struct {
	Greeting string
	Counts   models.TicketCounts
	// Activity holds the rendered activity lines, or MsgNoRecentActivity alone.
	Activity []string
}

// PoliceDashboard shows ticket counts and recent activity.
type PoliceDashboard struct {
	base
	counts   models.TicketCounts
	activity []models.Activity
}

func NewPoliceDashboard(deps Deps) *PoliceDashboard {
	return &PoliceDashboard{base: newBase(navigation.Dashboard, deps)}
}

func (s *PoliceDashboard) Mount(ctx context.Context) error {
	s.start(ctx)
	return s.Refresh()
}

// Refresh reloads counts and activity concurrently. Each result is applied on its own;
// a counts failure alerts, an activity failure only logs.
func (s *PoliceDashboard) Refresh() error {
	ctx, err := s.lifetime()
	if err != nil {
		return err
	}
	id, err := s.identity()
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		counts, err := s.deps.API.PoliceCounts(ctx, id.UserID)
		if s.discarded(ctx) {
			return nil
		}
		if err != nil {
			s.alert(TitleError, MsgCountsFailed)
			return err
		}
		s.mu.Lock()
		s.counts = *counts
		s.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		activity, err := s.deps.API.RecentActivity(ctx, id.UserID)
		if s.discarded(ctx) {
			return nil
		}
		if err != nil {
			s.swallow(ctx, api.OpRecentActivity, err)
			return nil
		}
		s.mu.Lock()
		s.activity = activity
		s.mu.Unlock()
		return nil
	})
	return g.Wait()
}

// View returns a snapshot of the display state.
func (s *PoliceDashboard) View() PoliceDashboardView {
	var greeting string
	if id, err := s.identity(); err == nil {
		greeting = "Welcome, " + id.DisplayName()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := PoliceDashboardView{Greeting: greeting, Counts: s.counts}
	if len(s.activity) == 0 {
		v.Activity = []string{MsgNoRecentActivity}
		return v
	}
	for _, a := range s.activity {
		v.Activity = append(v.Activity, a.Line())
	}
	return v
}

// TicketForm is the add-ticket form. Signature is the data URI from the signature pad.
type TicketForm struct {
	LicenseNo   string
	PlateNumber string
	Location    string
	Fine        domain.Amount
	DueDate     domain.Date
	ViolationID domain.ViolationID
	DriverID    domain.UserID
	Signature   string
}

// AddTicket issues tickets. It needs the violation catalog and driver list on mount.
type AddTicket struct {
	base
	onAdded    func()
	form       TicketForm
	violations []models.Violation
	drivers    []models.User
}

// NewAddTicket creates the controller. onAdded, if set, runs after each issued ticket
// (the dashboard passes its Refresh).
func NewAddTicket(deps Deps, onAdded func()) *AddTicket {
	return &AddTicket{base: newBase(navigation.AddTicket, deps), onAdded: onAdded}
}

// Mount fetches violations and drivers concurrently; each failure alerts separately.
func (s *AddTicket) Mount(ctx context.Context) error {
	ctx = s.start(ctx)

	var g errgroup.Group
	g.Go(func() error {
		violations, err := s.deps.API.Violations(ctx)
		if s.discarded(ctx) {
			return nil
		}
		if err != nil {
			s.alert(TitleError, MsgViolationsFailed)
			return err
		}
		s.mu.Lock()
		s.violations = violations
		s.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		drivers, err := s.deps.API.Drivers(ctx)
		if s.discarded(ctx) {
			return nil
		}
		if err != nil {
			s.alert(TitleError, MsgDriversFailed)
			return err
		}
		s.mu.Lock()
		s.drivers = drivers
		s.mu.Unlock()
		return nil
	})
	return g.Wait()
}

// Violations returns the catalog loaded on mount.
func (s *AddTicket) Violations() []models.Violation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.violations)
}

// Drivers returns the driver list loaded on mount.
func (s *AddTicket) Drivers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.drivers)
}

// Form returns the current form.
func (s *AddTicket) Form() TicketForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetForm replaces the form fields typed by the user.
func (s *AddTicket) SetForm(f TicketForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// SelectViolation picks a violation and pre-fills the fine with its penalty.
func (s *AddTicket) SelectViolation(id domain.ViolationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.violations, func(v models.Violation) bool { return v.ID == id })
	if i < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, MsgUnknownViolation)
	}
	s.form.ViolationID = id
	s.form.Fine = s.violations[i].PenaltyAmount
	return nil
}

// SelectDriver picks the driver the ticket is issued against.
func (s *AddTicket) SelectDriver(id domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.DriverID = id
}

// CaptureSignature stores the signature pad output verbatim.
func (s *AddTicket) CaptureSignature(dataURI string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Signature = dataURI
}

// ClearSignature discards the captured signature.
func (s *AddTicket) ClearSignature() {
	s.CaptureSignature("")
}

// Submit issues the ticket. Without a captured signature nothing is sent.
func (s *AddTicket) Submit() error {
	form := s.Form()
	if form.Signature == "" {
		return s.invalid(MsgSignatureRequired)
	}
	id, err := s.identity()
	if err != nil {
		return err
	}
	ctx, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	err = s.deps.API.AddTicket(ctx, models.NewTicket{
		LicenseNo:       form.LicenseNo,
		PlateNumber:     form.PlateNumber,
		DriverID:        form.DriverID,
		ViolationID:     form.ViolationID,
		FineAmount:      form.Fine,
		DueDate:         form.DueDate,
		Status:          models.TicketStatusPending,
		IssuedBy:        id.UserID,
		Location:        form.Location,
		DriverSignature: form.Signature,
	})
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		s.alert(TitleError, MsgAddTicketFailed)
		return err
	}
	s.mu.Lock()
	s.form = TicketForm{}
	s.mu.Unlock()
	s.alert(TitleSuccess, MsgTicketAdded)
	if s.onAdded != nil {
		s.onAdded()
	}
	return nil
}

// SearchView is what the search screen displays.
type SearchView struct {
	Start, End domain.Date
	Tickets    []models.Ticket
	// Message is MsgNoTicketsInRange when the list is empty.
	Message string
}

// Search lists tickets created within a date range.
type Search struct {
	base
	from, to domain.Date
	tickets  []models.Ticket
}

// NewSearch starts with both dates set to today.
func NewSearch(deps Deps) *Search {
	s := &Search{base: newBase(navigation.SearchTickets, deps)}
	today := domain.NewDate(s.deps.Now())
	s.from, s.to = today, today
	return s
}

func (s *Search) Mount(ctx context.Context) error {
	s.start(ctx)
	return nil
}

// SetRange sets the date range of the next search.
func (s *Search) SetRange(start, end domain.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.from, s.to = start, end
}

// Submit runs the search. A failed search is logged and leaves the list as it was.
func (s *Search) Submit() error {
	s.mu.Lock()
	start, end := s.from, s.to
	s.mu.Unlock()
	if start.IsZero() || end.IsZero() {
		return s.invalid(MsgDatesRequired)
	}
	ctx, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	tickets, err := s.deps.API.SearchTickets(ctx, start, end)
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		s.swallow(ctx, api.OpSearchTickets, err)
		return err
	}
	s.mu.Lock()
	s.tickets = tickets
	s.mu.Unlock()
	return nil
}

// View returns a snapshot of the display state.
func (s *Search) View() SearchView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := SearchView{Start: s.from, End: s.to, Tickets: slices.Clone(s.tickets)}
	if len(v.Tickets) == 0 {
		v.Message = MsgNoTicketsInRange
	}
	return v
}

// TicketsListView is what the issued tickets list displays.
type TicketsListView struct {
	Tickets []models.Ticket
	// Message is MsgNoTickets when the list is empty.
	Message string
}

// TicketsList shows every ticket issued by the signed-in officer and prints them.
type TicketsList struct {
	base
	tickets []models.Ticket
}

func NewTicketsList(deps Deps) *TicketsList {
	return &TicketsList{base: newBase(navigation.TicketsList, deps)}
}

func (s *TicketsList) Mount(ctx context.Context) error {
	s.start(ctx)
	return s.Refresh()
}

// Refresh reloads the list.
func (s *TicketsList) Refresh() error {
	ctx, err := s.lifetime()
	if err != nil {
		return err
	}
	id, err := s.identity()
	if err != nil {
		return err
	}
	tickets, err := s.deps.API.IssuedTickets(ctx, id.UserID)
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		s.alert(TitleError, MsgTicketsFailed)
		return err
	}
	s.mu.Lock()
	s.tickets = tickets
	s.mu.Unlock()
	return nil
}

// View returns a snapshot of the display state.
func (s *TicketsList) View() TicketsListView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := TicketsListView{Tickets: slices.Clone(s.tickets)}
	if len(v.Tickets) == 0 {
		v.Message = MsgNoTickets
	}
	return v
}

// Print renders a listed ticket and sends it to the printer. It returns where the
// printer put the document.
func (s *TicketsList) Print(ticketID domain.TicketID) (string, error) {
	ctx, err := s.lifetime()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	i := slices.IndexFunc(s.tickets, func(t models.Ticket) bool { return t.ID == ticketID })
	var ticket models.Ticket
	if i >= 0 {
		ticket = s.tickets[i]
	}
	s.mu.Unlock()
	if i < 0 {
		s.alert(TitleError, MsgTicketNotFound)
		return "", dErrors.New(dErrors.CodeNotFound, MsgTicketNotFound)
	}
	if s.deps.Printer == nil {
		s.alert(TitleError, MsgPrintFailed)
		return "", dErrors.New(dErrors.CodeInternal, "no printer configured")
	}

	var officer string
	if id, err := s.identity(); err == nil {
		officer = id.DisplayName()
	}
	doc, err := printing.RenderTicket(ticket, printing.Details{Officer: officer, PrintedAt: s.deps.Now()})
	if err != nil {
		s.alert(TitleError, MsgPrintFailed)
		return "", err
	}
	location, err := s.deps.Printer.Print(ctx, doc)
	if s.discarded(ctx) {
		return "", errUnmounted
	}
	if err != nil {
		s.deps.Logger.ErrorContext(ctx, "print failed", "ticket_id", ticketID, "error", err)
		s.alert(TitleError, MsgPrintFailed)
		return "", err
	}
	s.deps.Metrics.IncrementPrinted()
	s.alert(TitleSuccess, MsgTicketPrinted)
	return location, nil
}
