package screens

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"go.uber.org/mock/gomock"

	"tcis/internal/api"
	"tcis/internal/api/models"
	"tcis/internal/printing"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
)

var catalog = []models.Violation{
	{ID: 1, Name: "Speeding", PenaltyAmount: "1000.00"},
	{ID: 2, Name: "Illegal Parking", PenaltyAmount: "500.00"},
}

func (s *ScreensSuite) TestPoliceDashboard() {
	s.Run("loads counts and activity", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().PoliceCounts(gomock.Any(), domain.UserID(7)).
			Return(&models.TicketCounts{TotalTickets: 3, PendingTickets: 2, ResolvedDisputes: 1}, nil)
		s.mockAPI.EXPECT().RecentActivity(gomock.Any(), domain.UserID(7)).
			Return([]models.Activity{{TicketID: 12, FineAmount: "1000.00"}}, nil)

		screen := NewPoliceDashboard(s.deps())
		s.mount(screen)

		view := screen.View()
		s.Equal("Welcome, Jane Doe", view.Greeting)
		s.Equal(models.TicketCounts{TotalTickets: 3, PendingTickets: 2, ResolvedDisputes: 1}, view.Counts)
		s.Equal([]string{"Ticket ID: 12 - Fine: 1000.00"}, view.Activity)
		s.Empty(s.alerts())
	})

	s.Run("activity failure is silent", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().PoliceCounts(gomock.Any(), gomock.Any()).Return(&models.TicketCounts{TotalTickets: 1}, nil)
		s.mockAPI.EXPECT().RecentActivity(gomock.Any(), gomock.Any()).Return(nil, transportErr(api.OpRecentActivity))

		screen := NewPoliceDashboard(s.deps())
		s.mount(screen)

		view := screen.View()
		s.Equal(1, view.Counts.TotalTickets)
		s.Equal([]string{MsgNoRecentActivity}, view.Activity)
		s.Empty(s.alerts())
	})

	s.Run("counts failure alerts and activity still lands", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().PoliceCounts(gomock.Any(), gomock.Any()).
			Return(nil, applicationErr(api.OpPoliceCounts, http.StatusInternalServerError, ""))
		s.mockAPI.EXPECT().RecentActivity(gomock.Any(), gomock.Any()).
			Return([]models.Activity{{Description: "Issued ticket #5"}}, nil)

		screen := NewPoliceDashboard(s.deps())
		err := screen.Mount(s.ctx)
		s.T().Cleanup(screen.Unmount)

		s.Error(err)
		s.Equal([]alertRecord{{TitleError, MsgCountsFailed}}, s.alerts())
		s.Equal([]string{"Issued ticket #5"}, screen.View().Activity)
	})
}

func (s *ScreensSuite) mountAddTicket(onAdded func()) *AddTicket {
	s.mockAPI.EXPECT().Violations(gomock.Any()).Return(catalog, nil)
	s.mockAPI.EXPECT().Drivers(gomock.Any()).
		Return([]models.User{{ID: 42, FirstName: "Juan", LastName: "Cruz"}}, nil)
	screen := NewAddTicket(s.deps(), onAdded)
	s.mount(screen)
	return screen
}

func (s *ScreensSuite) TestAddTicket() {
	due, err := domain.ParseDate("2024-04-01")
	s.Require().NoError(err)

	s.Run("mount loads the pickers", func() {
		s.SetupTest()
		s.signIn(officer)
		screen := s.mountAddTicket(nil)

		s.Len(screen.Violations(), 2)
		s.Equal("Juan Cruz", screen.Drivers()[0].FullName())
	})

	s.Run("each failed picker alerts on its own", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().Violations(gomock.Any()).Return(nil, transportErr(api.OpViolations))
		s.mockAPI.EXPECT().Drivers(gomock.Any()).Return(nil, transportErr(api.OpDrivers))

		screen := NewAddTicket(s.deps(), nil)
		s.Error(screen.Mount(s.ctx))
		s.T().Cleanup(screen.Unmount)

		s.ElementsMatch([]alertRecord{
			{TitleError, MsgViolationsFailed},
			{TitleError, MsgDriversFailed},
		}, s.alerts())
	})

	s.Run("selecting a violation pre-fills the fine", func() {
		s.SetupTest()
		s.signIn(officer)
		screen := s.mountAddTicket(nil)

		s.Require().NoError(screen.SelectViolation(2))
		s.Equal(domain.Amount("500.00"), screen.Form().Fine)
		s.True(dErrors.HasCode(screen.SelectViolation(99), dErrors.CodeInvalidInput))
	})

	s.Run("no signature means no request", func() {
		s.SetupTest()
		s.signIn(officer)
		screen := s.mountAddTicket(nil)
		screen.SetForm(TicketForm{LicenseNo: "N01", PlateNumber: "ABC 1234", DueDate: due, DriverID: 42})
		s.Require().NoError(screen.SelectViolation(1))

		err := screen.Submit()

		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal(alertRecord{TitleError, MsgSignatureRequired}, s.lastAlert())
	})

	s.Run("issues a pending ticket signed by the officer", func() {
		s.SetupTest()
		s.signIn(officer)
		var refreshed atomic.Int32
		screen := s.mountAddTicket(func() { refreshed.Add(1) })
		screen.SetForm(TicketForm{LicenseNo: "N01", PlateNumber: "ABC 1234", Location: "EDSA", DueDate: due})
		screen.SelectDriver(42)
		s.Require().NoError(screen.SelectViolation(1))
		screen.CaptureSignature("data:image/png;base64,iVBORw0KGgo=")

		s.mockAPI.EXPECT().AddTicket(gomock.Any(), models.NewTicket{
			LicenseNo:       "N01",
			PlateNumber:     "ABC 1234",
			DriverID:        42,
			ViolationID:     1,
			FineAmount:      "1000.00",
			DueDate:         due,
			Status:          models.TicketStatusPending,
			IssuedBy:        7,
			Location:        "EDSA",
			DriverSignature: "data:image/png;base64,iVBORw0KGgo=",
		}).Return(nil)

		s.Require().NoError(screen.Submit())

		s.Equal(alertRecord{TitleSuccess, MsgTicketAdded}, s.lastAlert())
		s.EqualValues(1, refreshed.Load())
		s.Equal(TicketForm{}, screen.Form())
	})

	s.Run("backend failure keeps the form", func() {
		s.SetupTest()
		s.signIn(officer)
		screen := s.mountAddTicket(nil)
		screen.SetForm(TicketForm{LicenseNo: "N01", Signature: "sig"})
		s.mockAPI.EXPECT().AddTicket(gomock.Any(), gomock.Any()).
			Return(applicationErr(api.OpAddTicket, http.StatusBadRequest, "Invalid violation"))

		s.Error(screen.Submit())
		s.Equal(alertRecord{TitleError, MsgAddTicketFailed}, s.lastAlert())
		s.Equal("N01", screen.Form().LicenseNo)
	})

	s.Run("cleared signature blocks submission again", func() {
		s.SetupTest()
		s.signIn(officer)
		screen := s.mountAddTicket(nil)
		screen.CaptureSignature("sig")
		screen.ClearSignature()

		s.True(dErrors.HasCode(screen.Submit(), dErrors.CodeValidation))
	})
}

func (s *ScreensSuite) TestSearch() {
	s.Run("defaults to today and reports an empty range", func() {
		s.SetupTest()
		s.signIn(officer)
		screen := NewSearch(s.deps())
		s.mount(screen)

		today := domain.NewDate(fixedNow)
		s.mockAPI.EXPECT().SearchTickets(gomock.Any(), today, today).Return([]models.Ticket{}, nil)

		s.Require().NoError(screen.Submit())
		view := screen.View()
		s.Equal(today, view.Start)
		s.Empty(view.Tickets)
		s.Equal(MsgNoTicketsInRange, view.Message)
	})

	s.Run("failure is swallowed", func() {
		s.SetupTest()
		s.signIn(officer)
		screen := NewSearch(s.deps())
		s.mount(screen)
		s.mockAPI.EXPECT().SearchTickets(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, transportErr(api.OpSearchTickets))

		s.Error(screen.Submit())
		s.Empty(s.alerts())
	})

	s.Run("both dates are required", func() {
		s.SetupTest()
		s.signIn(officer)
		screen := NewSearch(s.deps())
		s.mount(screen)
		screen.SetRange(domain.NewDate(fixedNow), domain.Date{})

		s.True(dErrors.HasCode(screen.Submit(), dErrors.CodeValidation))
		s.Equal(alertRecord{TitleError, MsgDatesRequired}, s.lastAlert())
	})

	s.Run("lists matches", func() {
		s.SetupTest()
		s.signIn(officer)
		screen := NewSearch(s.deps())
		s.mount(screen)
		start, _ := domain.ParseDate("2024-03-01")
		end, _ := domain.ParseDate("2024-03-31")
		screen.SetRange(start, end)
		s.mockAPI.EXPECT().SearchTickets(gomock.Any(), start, end).Return([]models.Ticket{{ID: 3}}, nil)

		s.Require().NoError(screen.Submit())
		view := screen.View()
		s.Len(view.Tickets, 1)
		s.Empty(view.Message)
	})
}

func (s *ScreensSuite) TestTicketsList() {
	ticket := models.Ticket{
		ID:               12,
		LicenseNo:        "N01-23-456789",
		PlateNumber:      "ABC 1234",
		ViolationDetails: models.ViolationRef{ID: 1, Name: "Speeding"},
		FineAmount:       "1000.00",
		Status:           models.TicketStatusPending,
	}

	s.Run("empty list shows the no-data message", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().IssuedTickets(gomock.Any(), domain.UserID(7)).Return([]models.Ticket{}, nil)

		screen := NewTicketsList(s.deps())
		s.mount(screen)

		s.Equal(TicketsListView{Message: MsgNoTickets}, screen.View())
	})

	s.Run("fetch failure alerts", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().IssuedTickets(gomock.Any(), gomock.Any()).Return(nil, transportErr(api.OpIssuedTickets))

		screen := NewTicketsList(s.deps())
		s.Error(screen.Mount(s.ctx))
		s.T().Cleanup(screen.Unmount)
		s.Equal(alertRecord{TitleError, MsgTicketsFailed}, s.lastAlert())
	})

	s.Run("print renders the ticket and hands it to the printer", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().IssuedTickets(gomock.Any(), gomock.Any()).Return([]models.Ticket{ticket}, nil)
		s.printer.EXPECT().Print(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, doc printing.Document) (string, error) {
				s.Equal("ticket_12.pdf", doc.Name)
				s.True(strings.HasPrefix(string(doc.Data), "%PDF"))
				return "/spool/ticket_12.pdf", nil
			})

		screen := NewTicketsList(s.deps())
		s.mount(screen)

		location, err := screen.Print(12)
		s.Require().NoError(err)
		s.Equal("/spool/ticket_12.pdf", location)
		s.Equal(alertRecord{TitleSuccess, MsgTicketPrinted}, s.lastAlert())
	})

	s.Run("printer failure alerts", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().IssuedTickets(gomock.Any(), gomock.Any()).Return([]models.Ticket{ticket}, nil)
		s.printer.EXPECT().Print(gomock.Any(), gomock.Any()).Return("", errors.New("paper jam"))

		screen := NewTicketsList(s.deps())
		s.mount(screen)

		_, err := screen.Print(12)
		s.Error(err)
		s.Equal(alertRecord{TitleError, MsgPrintFailed}, s.lastAlert())
	})

	s.Run("unknown ticket is not printed", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().IssuedTickets(gomock.Any(), gomock.Any()).Return([]models.Ticket{ticket}, nil)

		screen := NewTicketsList(s.deps())
		s.mount(screen)

		_, err := screen.Print(99)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
