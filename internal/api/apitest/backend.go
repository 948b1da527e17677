// Package apitest is an in-memory citation backend speaking the same REST contract as the
// real one. Client tests, scenario tests and cmd/tcis-devapi run against it.
package apitest

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"tcis/internal/api/models"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
	"tcis/pkg/secrets"
)

// Dispute statuses used by the police counts.
const (
	DisputeStatusPending  = "Pending"
	DisputeStatusResolved = "Resolved"
)

// Payment is a recorded add_payment upload.
type Payment struct {
	TicketID        domain.TicketID
	UserID          domain.UserID
	Amount          domain.Amount
	ReceiptFilename string
	ReceiptType     string
	ReceiptSize     int64
}

type account struct {
	user models.User
	hash []byte
}

type ticketRecord struct {
	models.Ticket
	driver domain.UserID
}

type stub struct {
	status int
	body   string
}

// Backend holds every entity in memory. It is safe for concurrent use.
type Backend struct {
	mu     sync.Mutex
	logger *slog.Logger
	now    func() time.Time

	// strictRoles makes login reject a role that differs from the account's.
	strictRoles bool
	bcryptCost  int

	users      map[domain.UserID]*account
	usernames  map[string]domain.UserID
	violations []models.Violation
	tickets    map[domain.TicketID]*ticketRecord
	disputes   []models.Dispute
	payments   []Payment

	nextUser, nextTicket, nextDispute int64

	requests map[string]int
	stubs    map[string][]stub
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the request logger. Requests are not logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// WithClock fixes the creation time of new tickets and disputes.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

// WithStrictRoles makes login answer 400 when the requested role is not the account's role.
// Without it login returns the account's actual role and leaves the comparison to the client.
func WithStrictRoles() Option {
	return func(b *Backend) {
		b.strictRoles = true
	}
}

// WithBcryptCost sets the password hashing cost (secrets.MinCost by default).
func WithBcryptCost(cost int) Option {
	return func(b *Backend) {
		b.bcryptCost = cost
	}
}

// DefaultViolations is the catalog every Backend starts with.
var DefaultViolations = []models.Violation{
	{ID: 1, Name: "Speeding", PenaltyAmount: "1000.00"},
	{ID: 2, Name: "Illegal Parking", PenaltyAmount: "500.00"},
	{ID: 3, Name: "Reckless Driving", PenaltyAmount: "2000.00"},
	{ID: 4, Name: "No Helmet", PenaltyAmount: "1500.00"},
	{ID: 5, Name: "Beating the Red Light", PenaltyAmount: "1000.00"},
}

// New creates a Backend seeded with DefaultViolations and no users.
func New(opts ...Option) *Backend {
	b := &Backend{
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
		bcryptCost: secrets.MinCost,
		users:      make(map[domain.UserID]*account),
		usernames:  make(map[string]domain.UserID),
		violations: slices.Clone(DefaultViolations),
		tickets:    make(map[domain.TicketID]*ticketRecord),
		requests:   make(map[string]int),
		stubs:      make(map[string][]stub),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddUser registers an account. A zero u.ID takes the next free id.
func (b *Backend) AddUser(u models.User, password string) (domain.UserID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(u, password)
}

func (b *Backend) addUserLocked(u models.User, password string) (domain.UserID, error) {
	if !u.Role.Valid() {
		return 0, dErrors.New(dErrors.CodeValidation, "role must be Police or Driver")
	}
	key := strings.ToLower(u.Username)
	if _, taken := b.usernames[key]; taken {
		return 0, dErrors.New(dErrors.CodeConflict, "A user with that username already exists.")
	}
	hash, err := secrets.HashPassword(password, b.bcryptCost)
	if err != nil {
		return 0, err
	}
	if u.ID == 0 {
		b.nextUser++
		for b.users[domain.UserID(b.nextUser)] != nil {
			b.nextUser++
		}
		u.ID = domain.UserID(b.nextUser)
	}
	if _, exists := b.users[u.ID]; exists {
		return 0, dErrors.New(dErrors.CodeConflict, "user id already in use")
	}
	b.users[u.ID] = &account{user: u, hash: hash}
	b.usernames[key] = u.ID
	return u.ID, nil
}

// IssueTicket stores a ticket as if a police user had created it. Zero ID, status and
// creation time take defaults; driver links the ticket to a driver's active list.
func (b *Backend) IssueTicket(t models.Ticket, driver domain.UserID) domain.TicketID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueLocked(t, driver)
}

func (b *Backend) issueLocked(t models.Ticket, driver domain.UserID) domain.TicketID {
	if t.ID == 0 {
		b.nextTicket++
		for b.tickets[domain.TicketID(b.nextTicket)] != nil {
			b.nextTicket++
		}
		t.ID = domain.TicketID(b.nextTicket)
	}
	if t.Status == "" {
		t.Status = models.TicketStatusPending
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = b.now().UTC()
	}
	b.tickets[t.ID] = &ticketRecord{Ticket: t, driver: driver}
	return t.ID
}

// ResolveDispute marks a dispute resolved so it shows in the police counts.
func (b *Backend) ResolveDispute(id domain.DisputeID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.disputes {
		if b.disputes[i].ID == id {
			b.disputes[i].Status = DisputeStatusResolved
			return true
		}
	}
	return false
}

// Ticket returns a copy of a stored ticket.
func (b *Backend) Ticket(id domain.TicketID) (models.Ticket, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.tickets[id]
	if !ok {
		return models.Ticket{}, false
	}
	return rec.Ticket, true
}

// Tickets returns every stored ticket ordered by id.
func (b *Backend) Tickets() []models.Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ticketsWhere(func(*ticketRecord) bool { return true })
}

// Violations returns the violation catalog.
func (b *Backend) Violations() []models.Violation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.violations)
}

// Disputes returns every filed dispute in filing order.
func (b *Backend) Disputes() []models.Dispute {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.disputes)
}

// Payments returns every recorded payment in upload order.
func (b *Backend) Payments() []Payment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.payments)
}

// User returns the stored account data.
func (b *Backend) User(id domain.UserID) (models.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.users[id]
	if !ok {
		return models.User{}, false
	}
	return acc.user, true
}

// Stub makes the next request to method+path answer status with a raw body instead of
// running the handler. Stubs queue up and are consumed in order.
func (b *Backend) Stub(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := requestKey(method, path)
	b.stubs[key] = append(b.stubs[key], stub{status: status, body: body})
}

// Requests returns how many requests reached method+path, stubbed ones included.
func (b *Backend) Requests(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[requestKey(method, path)]
}

// TotalRequests returns how many requests reached the backend.
func (b *Backend) TotalRequests() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.requests {
		total += n
	}
	return total
}

// ResetRequests zeroes the request counters.
func (b *Backend) ResetRequests() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.requests)
}

func requestKey(method, path string) string {
	return method + " " + path
}

func (b *Backend) ticketsWhere(keep func(*ticketRecord) bool) []models.Ticket {
	out := make([]models.Ticket, 0)
	for _, rec := range b.tickets {
		if keep(rec) {
			out = append(out, rec.Ticket)
		}
	}
	slices.SortFunc(out, func(a, c models.Ticket) int { return cmp.Compare(a.ID, c.ID) })
	return out
}
