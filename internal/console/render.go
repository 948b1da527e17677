package console

import (
	"strings"

	"tcis/internal/api/models"
	"tcis/internal/navigation"
	"tcis/internal/screens"
)

// render prints the shown screen's display state.
func (a *App) render() {
	p := a.presenter
	p.Printf("\n== %s ==\n", a.shown.Screen)

	switch c := a.current().(type) {
	case *screens.PoliceDashboard:
		v := c.View()
		p.Printf("%s\n", v.Greeting)
		p.Printf("Total tickets: %d | Pending: %d | Resolved disputes: %d\n",
			v.Counts.TotalTickets, v.Counts.PendingTickets, v.Counts.ResolvedDisputes)
		p.Printf("Recent activity:\n")
		for _, line := range v.Activity {
			p.Printf("  %s\n", line)
		}
	case *screens.AddTicket:
		f := c.Form()
		signed := "no"
		if f.Signature != "" {
			signed = "yes"
		}
		p.Printf("license=%q plate=%q location=%q violation=%s driver=%s fine=%s due=%s signed=%s\n",
			f.LicenseNo, f.PlateNumber, f.Location, f.ViolationID, f.DriverID, f.Fine, f.DueDate, signed)
	case *screens.Search:
		v := c.View()
		p.Printf("Range: %s to %s\n", v.Start, v.End)
		a.renderTickets(v.Tickets, v.Message)
	case *screens.TicketsList:
		v := c.View()
		a.renderTickets(v.Tickets, v.Message)
	case *screens.DriverDashboard:
		p.Printf("%s\n", c.Greeting())
		for _, s := range screens.DriverQuickLinks {
			p.Printf("  open %s\n", s)
		}
	case *screens.ActiveTickets:
		v := c.View()
		a.renderTickets(v.Tickets, v.Message)
		if t := v.Selected; t != nil {
			p.Printf("-- Ticket #%s --\nLicense: %s\nPlate: %s\nViolation: %s\nFine: %s\nDue: %s\nStatus: %s\nLocation: %s\n",
				t.ID, t.LicenseNo, t.PlateNumber, t.ViolationName(), t.FineAmount, t.DueDate, t.Status, t.Location)
		}
	case *screens.Dispute:
		f := c.Form()
		p.Printf("ticket=%q reason=%q\n", f.TicketNumber, f.Reason)
	case *screens.MyDisputes:
		v := c.View()
		if v.Message != "" {
			p.Printf("%s\n", v.Message)
		}
		for _, d := range v.Disputes {
			p.Printf("  #%s ticket %s: %s [%s]\n", d.ID, d.Ticket, d.Reason, d.Status)
		}
	case *screens.Payment:
		f := c.Form()
		p.Printf("ticket=%q fine=%s receipt=%q\n", f.TicketID, f.Fine, f.ReceiptURI)
	case *screens.Profile:
		f := c.Form()
		p.Printf("first=%q last=%q mobile=%q password=%s\n",
			f.FirstName, f.LastName, f.MobileNumber, strings.Repeat("*", len(f.Password)))
	}

	if a.shown.Stack.IsMain() {
		drawer, err := navigation.Drawer(a.shown.Stack.Role())
		if err == nil {
			names := make([]string, len(drawer))
			for i, s := range drawer {
				names[i] = string(s)
			}
			p.Printf("menu: %s\n", strings.Join(names, " | "))
		}
	}
}

func (a *App) renderTickets(tickets []models.Ticket, empty string) {
	if len(tickets) == 0 {
		a.presenter.Printf("%s\n", empty)
		return
	}
	for _, t := range tickets {
		a.presenter.Printf("  #%s  %s  %s  %s  due %s  %s\n",
			t.ID, t.PlateNumber, t.ViolationName(), t.FineAmount, t.DueDate, t.Status)
	}
}
