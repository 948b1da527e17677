package screens

import (
	"context"
	"slices"
	"strings"

	"tcis/internal/api"
	"tcis/internal/api/models"
	"tcis/internal/navigation"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
	str "tcis/pkg/string"
)

// Driver screen messages.
const (
	MsgNoActiveTickets   = "No active tickets available."
	MsgDisputeFields     = "Please provide both ticket number and dispute reason"
	MsgDisputeSubmitted  = "Your dispute has been submitted for review."
	MsgUnexpectedError   = "An unexpected error occurred."
	MsgDisputeTransport  = "There was an issue submitting your dispute. Please try again later."
	MsgNoDisputes        = "No disputes found."
	MsgEnterTicketID     = "Please enter a ticket ID."
	MsgFineLookupFailed  = "An error occurred while fetching ticket details."
	MsgReceiptRequired   = "Please upload a receipt image."
	MsgPaymentRecorded   = "Payment recorded successfully."
	MsgPaymentFailed     = "Payment failed."
	MsgPaymentTransport  = "An error occurred while processing the payment."
	MsgNotADashboardLink = "That screen is not linked from the dashboard."
)

// DriverDashboard is a menu of quick links into the driver drawer.
type DriverDashboard struct {
	base
}

// DriverQuickLinks are the screens the dashboard links to, in display order.
var DriverQuickLinks = []navigation.Screen{
	navigation.ActiveTickets,
	navigation.FileDisputes,
	navigation.MyDisputes,
	navigation.Payment,
	navigation.Profile,
}

func NewDriverDashboard(deps Deps) *DriverDashboard {
	return &DriverDashboard{base: newBase(navigation.DriverDashboard, deps)}
}

func (s *DriverDashboard) Mount(ctx context.Context) error {
	s.start(ctx)
	return nil
}

// Greeting names the signed-in driver.
func (s *DriverDashboard) Greeting() string {
	id, err := s.identity()
	if err != nil {
		return ""
	}
	return "Welcome, " + id.DisplayName()
}

// Follow opens one of the quick links.
func (s *DriverDashboard) Follow(screen navigation.Screen) error {
	if !slices.Contains(DriverQuickLinks, screen) {
		return dErrors.New(dErrors.CodeInvalidInput, MsgNotADashboardLink)
	}
	return s.deps.Navigator.Open(screen)
}

// ActiveTicketsView is what the active tickets screen displays.
type ActiveTicketsView struct {
	Tickets []models.Ticket
	// Selected is the ticket whose detail panel is open, if any.
	Selected *models.Ticket
	// Message is MsgNoActiveTickets when the list is empty.
	Message string
}

// ActiveTickets lists the signed-in driver's unpaid tickets.
type ActiveTickets struct {
	base
	tickets  []models.Ticket
	selected domain.TicketID
}

func NewActiveTickets(deps Deps) *ActiveTickets {
	return &ActiveTickets{base: newBase(navigation.ActiveTickets, deps)}
}

func (s *ActiveTickets) Mount(ctx context.Context) error {
	s.start(ctx)
	return s.Refresh()
}

// Refresh reloads the list. Failures are logged and leave the previous list in place.
func (s *ActiveTickets) Refresh() error {
	ctx, err := s.lifetime()
	if err != nil {
		return err
	}
	id, err := s.identity()
	if err != nil {
		return err
	}
	tickets, err := s.deps.API.ActiveTickets(ctx, id.UserID)
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		s.swallow(ctx, api.OpActiveTickets, err)
		return nil
	}
	s.mu.Lock()
	s.tickets = tickets
	if !slices.ContainsFunc(tickets, func(t models.Ticket) bool { return t.ID == s.selected }) {
		s.selected = 0
	}
	s.mu.Unlock()
	return nil
}

// Select opens the detail panel for a listed ticket.
func (s *ActiveTickets) Select(id domain.TicketID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.ContainsFunc(s.tickets, func(t models.Ticket) bool { return t.ID == id }) {
		return dErrors.New(dErrors.CodeNotFound, MsgTicketNotFound)
	}
	s.selected = id
	return nil
}

// CloseDetail closes the detail panel.
func (s *ActiveTickets) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = 0
}

// View returns a snapshot of the display state.
func (s *ActiveTickets) View() ActiveTicketsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := ActiveTicketsView{Tickets: slices.Clone(s.tickets)}
	if len(v.Tickets) == 0 {
		v.Message = MsgNoActiveTickets
		return v
	}
	if i := slices.IndexFunc(v.Tickets, func(t models.Ticket) bool { return t.ID == s.selected }); i >= 0 {
		sel := v.Tickets[i]
		v.Selected = &sel
	}
	return v
}

// DisputeForm is what the driver typed on the dispute screen.
type DisputeForm struct {
	TicketNumber string
	Reason       string
}

// Dispute files a dispute against a ticket.
type Dispute struct {
	base
	form DisputeForm
}

func NewDispute(deps Deps) *Dispute {
	return &Dispute{base: newBase(navigation.FileDisputes, deps)}
}

func (s *Dispute) Mount(ctx context.Context) error {
	s.start(ctx)
	return nil
}

// Form returns the current form.
func (s *Dispute) Form() DisputeForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetForm replaces the typed fields.
func (s *Dispute) SetForm(f DisputeForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// Submit files the dispute. On success both fields are cleared.
func (s *Dispute) Submit() error {
	form := s.Form()
	if str.AnyBlank(form.TicketNumber, form.Reason) {
		return s.invalid(MsgDisputeFields)
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

	receipt, err := s.deps.API.SubmitDispute(ctx, models.DisputeRequest{
		Ticket:  form.TicketNumber,
		FiledBy: id.UserID,
		Reason:  form.Reason,
	})
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		switch api.KindOf(err) {
		case api.KindApplication:
			s.alert(TitleError, api.Message(err, MsgUnexpectedError))
		case api.KindContract:
			s.alert(TitleError, MsgUnexpectedError)
		default:
			s.alert(TitleError, MsgDisputeTransport)
		}
		return err
	}

	s.mu.Lock()
	s.form = DisputeForm{}
	s.mu.Unlock()
	msg := MsgDisputeSubmitted
	if receipt != nil && receipt.Message != "" {
		msg = receipt.Message
	}
	s.alert(TitleDisputeSubmitted, msg)
	return nil
}

// MyDisputesView is what the disputes list displays.
type MyDisputesView struct {
	Disputes []models.Dispute
	// Message is MsgNoDisputes when the list is empty.
	Message string
}

// MyDisputes lists the disputes the signed-in driver has filed.
type MyDisputes struct {
	base
	disputes []models.Dispute
}

func NewMyDisputes(deps Deps) *MyDisputes {
	return &MyDisputes{base: newBase(navigation.MyDisputes, deps)}
}

func (s *MyDisputes) Mount(ctx context.Context) error {
	s.start(ctx)
	return s.Refresh()
}

// Refresh reloads the list. Failures are logged only.
func (s *MyDisputes) Refresh() error {
	ctx, err := s.lifetime()
	if err != nil {
		return err
	}
	id, err := s.identity()
	if err != nil {
		return err
	}
	disputes, err := s.deps.API.Disputes(ctx, id.UserID)
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		s.swallow(ctx, api.OpDisputes, err)
		return nil
	}
	s.mu.Lock()
	s.disputes = disputes
	s.mu.Unlock()
	return nil
}

// View returns a snapshot of the display state.
func (s *MyDisputes) View() MyDisputesView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := MyDisputesView{Disputes: slices.Clone(s.disputes)}
	if len(v.Disputes) == 0 {
		v.Message = MsgNoDisputes
	}
	return v
}

// PaymentForm is the payment screen state. Fine is filled by LookupFine and
// ReceiptURI by the photo picker.
type PaymentForm struct {
	TicketID   string
	Fine       domain.Amount
	ReceiptURI string
}

// Payment records a fine payment with a receipt photo.
type Payment struct {
	base
	form PaymentForm
}

func NewPayment(deps Deps) *Payment {
	return &Payment{base: newBase(navigation.Payment, deps)}
}

func (s *Payment) Mount(ctx context.Context) error {
	s.start(ctx)
	return nil
}

// Form returns the current form.
func (s *Payment) Form() PaymentForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetTicketID sets the ticket being paid. A new ticket id forgets the looked-up fine.
func (s *Payment) SetTicketID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.form.TicketID {
		s.form.Fine = ""
	}
	s.form.TicketID = id
}

// PickReceipt stores the URI returned by the photo picker.
func (s *Payment) PickReceipt(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.ReceiptURI = uri
}

// LookupFine fetches the fine of the entered ticket.
func (s *Payment) LookupFine() error {
	ticketID := strings.TrimSpace(s.Form().TicketID)
	if ticketID == "" {
		return s.invalid(MsgEnterTicketID)
	}
	ctx, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	fine, err := s.deps.API.TicketFine(ctx, ticketID)
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		if api.KindOf(err) == api.KindApplication {
			s.alert(TitleError, MsgTicketNotFound)
		} else {
			s.alert(TitleError, MsgFineLookupFailed)
		}
		return err
	}
	s.mu.Lock()
	s.form.Fine = fine.FineAmount
	s.mu.Unlock()
	return nil
}

// Submit uploads the payment, then returns to the driver dashboard.
func (s *Payment) Submit() error {
	form := s.Form()
	if str.AnyBlank(form.TicketID) {
		return s.invalid(MsgEnterTicketID)
	}
	if form.ReceiptURI == "" {
		return s.invalid(MsgReceiptRequired)
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

	err = s.deps.API.AddPayment(ctx, models.PaymentRequest{
		TicketID:   form.TicketID,
		UserID:     id.UserID,
		Amount:     form.Fine,
		ReceiptURI: form.ReceiptURI,
	})
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		if api.KindOf(err) == api.KindApplication {
			s.alert(TitleError, api.Message(err, MsgPaymentFailed))
		} else {
			s.alert(TitleError, MsgPaymentTransport)
		}
		return err
	}

	s.mu.Lock()
	s.form = PaymentForm{}
	s.mu.Unlock()
	s.alert(TitleSuccess, MsgPaymentRecorded)
	return s.deps.Navigator.Open(navigation.DriverDashboard)
}
