package apitest

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"tcis/internal/api"
	"tcis/internal/api/models"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
	"tcis/pkg/secrets"
	str "tcis/pkg/string"
)

// recentActivityLimit is how many tickets the recent activity feed returns.
const recentActivityLimit = 5

// Roles arrive as free text so an unknown role gets a backend-style error, not a decode failure.
type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type signupBody struct {
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobile_number"`
	Role         string `json:"role"`
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[credentialsBody](w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id, found := b.usernames[strings.ToLower(req.Username)]
	if !found {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	acc := b.users[id]
	if secrets.VerifyPassword(acc.hash, req.Password) != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if b.strictRoles && acc.user.Role != role {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("User is not registered as a %s", role))
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResponse{
		UserID:    acc.user.ID,
		FirstName: acc.user.FirstName,
		LastName:  acc.user.LastName,
		Role:      acc.user.Role,
	})
}

func (b *Backend) handleSignup(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[signupBody](w, r)
	if !ok {
		return
	}
	for _, v := range []string{req.FirstName, req.LastName, req.Username, req.Password, req.MobileNumber} {
		if strings.TrimSpace(v) == "" {
			writeError(w, http.StatusBadRequest, "All fields are required")
			return
		}
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"role": {"Select a valid choice."}})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id, err := b.addUserLocked(models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		MobileNumber: req.MobileNumber,
		Role:         role,
	}, req.Password)
	if dErrors.HasCode(err, dErrors.CodeConflict) {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"username": {err.Error()}})
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.SignupResponse{ID: id, FirstName: req.FirstName, LastName: req.LastName})
}

func (b *Backend) handleLogout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (b *Backend) handleActiveTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	active := b.ticketsWhere(func(t *ticketRecord) bool {
		return t.driver == userID && t.Status != models.TicketStatusPaid
	})
	writeJSON(w, http.StatusOK, models.ActiveTicketsResponse{ActiveTickets: active})
}

func (b *Backend) handleAddTicket(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[models.NewTicket](w, r)
	if !ok {
		return
	}
	if str.AnyBlank(req.LicenseNo, req.PlateNumber) {
		writeError(w, http.StatusBadRequest, "License number and plate number are required")
		return
	}
	if req.DriverSignature == "" {
		writeError(w, http.StatusBadRequest, "Driver signature is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	idx := slices.IndexFunc(b.violations, func(v models.Violation) bool { return v.ID == req.ViolationID })
	if idx < 0 {
		writeError(w, http.StatusBadRequest, "Invalid violation")
		return
	}
	officer, found := b.users[req.IssuedBy]
	if !found || officer.user.Role != domain.RolePolice {
		writeError(w, http.StatusBadRequest, "Tickets can only be issued by police users")
		return
	}
	if req.DriverID != 0 {
		if driver, found := b.users[req.DriverID]; !found || driver.user.Role != domain.RoleDriver {
			writeError(w, http.StatusBadRequest, "Invalid driver")
			return
		}
	}

	v := b.violations[idx]
	fine := req.FineAmount
	if fine.IsZero() {
		fine = v.PenaltyAmount
	}
	id := b.issueLocked(models.Ticket{
		LicenseNo:        req.LicenseNo,
		PlateNumber:      req.PlateNumber,
		ViolationDetails: models.ViolationRef{ID: v.ID, Name: v.Name, PenaltyAmount: v.PenaltyAmount},
		Violation:        v.Name,
		FineAmount:       fine,
		DueDate:          req.DueDate,
		Status:           req.Status,
		IssuedBy:         req.IssuedBy,
		Location:         req.Location,
		DriverSignature:  req.DriverSignature,
	}, req.DriverID)
	writeJSON(w, http.StatusCreated, b.tickets[id].Ticket)
}

func (b *Backend) handleViolations(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.violations)
}

func (b *Backend) handleDrivers(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	drivers := make([]models.User, 0)
	for _, acc := range b.users {
		if acc.user.Role == domain.RoleDriver {
			drivers = append(drivers, acc.user)
		}
	}
	slices.SortFunc(drivers, func(a, c models.User) int { return cmp.Compare(a.ID, c.ID) })
	writeJSON(w, http.StatusOK, models.DriversResponse{Drivers: drivers})
}

func (b *Backend) handleSearchTickets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("start_date") == "" || q.Get("end_date") == "" {
		writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}
	start, err := domain.ParseDate(q.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date")
		return
	}
	end, err := domain.ParseDate(q.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	found := b.ticketsWhere(func(t *ticketRecord) bool {
		created := domain.NewDate(t.CreatedAt)
		return !created.Before(start.Time) && !created.After(end.Time)
	})
	writeJSON(w, http.StatusOK, found)
}

func (b *Backend) handleIssuedTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.ticketsWhere(func(t *ticketRecord) bool { return t.IssuedBy == userID }))
}

func (b *Backend) handleTicketFine(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseTicketID(chi.URLParam(r, "ticketID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, found := b.tickets[id]
	if !found {
		writeError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	writeJSON(w, http.StatusOK, models.TicketFine{ID: rec.ID, FineAmount: rec.FineAmount})
}

func (b *Backend) handleSubmitDispute(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[models.DisputeRequest](w, r)
	if !ok {
		return
	}
	if str.AnyBlank(req.Ticket, req.Reason) {
		writeError(w, http.StatusBadRequest, "Ticket and reason are required")
		return
	}
	ticketID, err := domain.ParseTicketID(req.Ticket)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ticket number")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.users[req.FiledBy]; !found {
		writeError(w, http.StatusBadRequest, "Invalid user")
		return
	}
	if _, found := b.tickets[ticketID]; !found {
		writeError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	b.nextDispute++
	d := models.Dispute{
		ID:        domain.DisputeID(b.nextDispute),
		Ticket:    ticketID,
		FiledBy:   req.FiledBy,
		Reason:    req.Reason,
		Status:    DisputeStatusPending,
		CreatedAt: b.now().UTC(),
	}
	b.disputes = append(b.disputes, d)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Dispute submitted successfully",
		"id":      d.ID,
	})
}

func (b *Backend) handleDisputes(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Dispute, 0)
	for _, d := range b.disputes {
		if d.FiledBy == userID {
			out = append(out, d)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Receipt image is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	ticketID, err := domain.ParseTicketID(r.FormValue(api.FieldTicketID))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}
	userID, err := domain.ParseUserID(r.FormValue(api.FieldUserID))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	file, header, err := r.FormFile(api.FieldReceiptImage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Receipt image is required")
		return
	}
	defer file.Close()
	size, err := io.Copy(io.Discard, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read receipt image")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rec, found := b.tickets[ticketID]
	if !found {
		writeError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	if rec.Status == models.TicketStatusPaid {
		writeError(w, http.StatusBadRequest, "Ticket is already paid")
		return
	}
	amount := domain.Amount(r.FormValue(api.FieldAmount))
	if amount.IsZero() {
		amount = rec.FineAmount
	}
	rec.Status = models.TicketStatusPaid
	b.payments = append(b.payments, Payment{
		TicketID:        ticketID,
		UserID:          userID,
		Amount:          amount,
		ReceiptFilename: header.Filename,
		ReceiptType:     header.Header.Get("Content-Type"),
		ReceiptSize:     size,
	})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Payment recorded successfully"})
}

func (b *Backend) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, found := b.users[userID]
	if !found {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, profileOf(acc.user))
}

func (b *Backend) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	req, ok := decodeJSON[models.ProfileUpdate](w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, found := b.users[userID]
	if !found {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if req.Password != "" {
		hash, err := secrets.HashPassword(req.Password, b.bcryptCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update password")
			return
		}
		acc.hash = hash
	}
	if req.FirstName != "" {
		acc.user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		acc.user.LastName = req.LastName
	}
	if req.MobileNumber != "" {
		acc.user.MobileNumber = req.MobileNumber
	}
	writeJSON(w, http.StatusOK, profileOf(acc.user))
}

func profileOf(u models.User) models.Profile {
	return models.Profile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		MobileNumber: u.MobileNumber,
		Role:         u.Role,
	}
}

func (b *Backend) handlePoliceCounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var counts models.TicketCounts
	issued := make(map[domain.TicketID]bool)
	for _, t := range b.tickets {
		if t.IssuedBy != userID {
			continue
		}
		issued[t.ID] = true
		counts.TotalTickets++
		if t.Status == models.TicketStatusPending {
			counts.PendingTickets++
		}
	}
	for _, d := range b.disputes {
		if issued[d.Ticket] && d.Status == DisputeStatusResolved {
			counts.ResolvedDisputes++
		}
	}
	writeJSON(w, http.StatusOK, counts)
}

func (b *Backend) handleRecentActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	issued := b.ticketsWhere(func(t *ticketRecord) bool { return t.IssuedBy == userID })
	slices.SortStableFunc(issued, func(a, c models.Ticket) int { return c.CreatedAt.Compare(a.CreatedAt) })
	if len(issued) > recentActivityLimit {
		issued = issued[:recentActivityLimit]
	}
	activity := make([]models.Activity, 0, len(issued))
	for _, t := range issued {
		activity = append(activity, models.Activity{TicketID: t.ID, FineAmount: t.FineAmount})
	}
	writeJSON(w, http.StatusOK, activity)
}
