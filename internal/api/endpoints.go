package api

// Operation names double as metric labels and span suffixes.
const (
	OpLogin          = "login"
	OpSignup         = "signup"
	OpLogout         = "logout"
	OpActiveTickets  = "active_tickets"
	OpAddTicket      = "add_ticket"
	OpViolations     = "violations"
	OpDrivers        = "drivers"
	OpSearchTickets  = "search_tickets"
	OpIssuedTickets  = "issued_tickets"
	OpTicketFine     = "ticket_fine"
	OpSubmitDispute  = "submit_dispute"
	OpDisputes       = "disputes"
	OpAddPayment     = "add_payment"
	OpProfile        = "profile"
	OpUpdateProfile  = "update_profile"
	OpPoliceCounts   = "police_counts"
	OpRecentActivity = "recent_activity"
)

// Route paths. Prefixes ending in "/" take an identifier and a trailing slash.
const (
	PathLogin          = "/api/login/"
	PathSignup         = "/api/signup/"
	PathLogout         = "/api/logout/"
	PathActiveTickets  = "/api/active_tickets/"
	PathAddTicket      = "/api/addticket/"
	PathViolations     = "/api/get_violations/"
	PathDrivers        = "/api/get_drivers/"
	PathSearchTickets  = "/api/tickets/search/"
	PathIssuedTickets  = "/api/get_All_tickets/"
	PathTicket         = "/api/ticket/"
	PathSubmitDispute  = "/api/submit_dispute/"
	PathDisputes       = "/api/disputes/"
	PathAddPayment     = "/api/add_payment/"
	PathUserProfile    = "/api/user_profile/"
	PathPoliceCounts   = "/api/get_ticketsByPoliceCounts/"
	PathRecentActivity = "/api/get_recent_activity/"
)
