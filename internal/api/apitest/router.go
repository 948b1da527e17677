package apitest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tcis/internal/api"
	"tcis/internal/platform/middleware"
)

// MaxUploadBytes bounds the add_payment multipart body.
const MaxUploadBytes = 10 << 20

// Router returns the HTTP handler serving every backend route.
func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(b.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(b.logger))
	r.Use(b.countAndStub)

	r.Post(api.PathLogin, b.handleLogin)
	r.Post(api.PathSignup, b.handleSignup)
	r.Post(api.PathLogout, b.handleLogout)

	r.Get(api.PathActiveTickets+"{userID}/", b.handleActiveTickets)
	r.Post(api.PathAddTicket, b.handleAddTicket)
	r.Get(api.PathViolations, b.handleViolations)
	r.Get(api.PathDrivers, b.handleDrivers)
	r.Get(api.PathSearchTickets, b.handleSearchTickets)
	r.Get(api.PathIssuedTickets+"{userID}/", b.handleIssuedTickets)
	r.Get(api.PathTicket+"{ticketID}/", b.handleTicketFine)

	r.Post(api.PathSubmitDispute, b.handleSubmitDispute)
	r.Get(api.PathDisputes+"{userID}/", b.handleDisputes)

	r.With(middleware.BodyLimit(MaxUploadBytes)).Post(api.PathAddPayment, b.handleAddPayment)

	r.Get(api.PathUserProfile+"{userID}/", b.handleGetProfile)
	r.Put(api.PathUserProfile+"{userID}/", b.handleUpdateProfile)

	r.Get(api.PathPoliceCounts+"{userID}/", b.handlePoliceCounts)
	r.Get(api.PathRecentActivity+"{userID}/", b.handleRecentActivity)

	return r
}

// countAndStub counts every request and answers from a queued stub when one exists.
func (b *Backend) countAndStub(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := requestKey(r.Method, r.URL.Path)
		b.mu.Lock()
		b.requests[key]++
		var st *stub
		if queue := b.stubs[key]; len(queue) > 0 {
			st = &queue[0]
			b.stubs[key] = queue[1:]
		}
		b.mu.Unlock()

		if st != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(st.status)
			_, _ = w.Write([]byte(st.body)) //nolint:errcheck // headers already sent
			return
		}
		next.ServeHTTP(w, r)
	})
}
