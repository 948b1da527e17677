package screens

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/mock/gomock"

	"tcis/internal/api"
	"tcis/internal/api/models"
	"tcis/internal/navigation"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
	"tcis/pkg/testutil"
)

func (s *ScreensSuite) TestDriverDashboard() {
	s.signIn(driver)
	screen := NewDriverDashboard(s.deps())
	s.mount(screen)

	s.Equal("Welcome, Juan Cruz", screen.Greeting())
	for _, link := range DriverQuickLinks {
		s.Require().NoError(screen.Follow(link))
		s.Equal(link, s.nav.Current().Screen)
	}
	s.True(dErrors.HasCode(screen.Follow(navigation.AddTicket), dErrors.CodeInvalidInput))
}

func (s *ScreensSuite) TestActiveTickets() {
	s.Run("empty list is not an error", func() {
		s.SetupTest()
		s.signIn(driver)
		s.mockAPI.EXPECT().ActiveTickets(gomock.Any(), domain.UserID(42)).Return([]models.Ticket{}, nil)

		screen := NewActiveTickets(s.deps())
		s.mount(screen)

		view := screen.View()
		s.Equal(MsgNoActiveTickets, view.Message)
		s.Nil(view.Selected)
		s.Empty(s.alerts())
	})

	s.Run("failure is swallowed", func() {
		s.SetupTest()
		s.signIn(driver)
		s.mockAPI.EXPECT().ActiveTickets(gomock.Any(), gomock.Any()).Return(nil, transportErr(api.OpActiveTickets))

		screen := NewActiveTickets(s.deps())
		s.mount(screen)

		s.Equal(MsgNoActiveTickets, screen.View().Message)
		s.Empty(s.alerts())
	})

	s.Run("select and close the detail panel", func() {
		s.SetupTest()
		s.signIn(driver)
		s.mockAPI.EXPECT().ActiveTickets(gomock.Any(), gomock.Any()).
			Return([]models.Ticket{{ID: 3, FineAmount: "500.00"}, {ID: 4}}, nil)

		screen := NewActiveTickets(s.deps())
		s.mount(screen)

		s.Require().NoError(screen.Select(3))
		s.Require().NotNil(screen.View().Selected)
		s.Equal(domain.Amount("500.00"), screen.View().Selected.FineAmount)

		screen.CloseDetail()
		s.Nil(screen.View().Selected)
		s.True(dErrors.HasCode(screen.Select(9), dErrors.CodeNotFound))
	})

	s.Run("refresh drops a selection that is no longer listed", func() {
		s.SetupTest()
		s.signIn(driver)
		gomock.InOrder(
			s.mockAPI.EXPECT().ActiveTickets(gomock.Any(), gomock.Any()).Return([]models.Ticket{{ID: 3}}, nil),
			s.mockAPI.EXPECT().ActiveTickets(gomock.Any(), gomock.Any()).Return([]models.Ticket{{ID: 4}}, nil),
		)

		screen := NewActiveTickets(s.deps())
		s.mount(screen)
		s.Require().NoError(screen.Select(3))
		s.Require().NoError(screen.Refresh())

		s.Nil(screen.View().Selected)
	})
}

func (s *ScreensSuite) TestDispute() {
	s.Run("201 clears the form and confirms", func() {
		s.SetupTest()
		s.signIn(driver)
		screen := NewDispute(s.deps())
		s.mount(screen)
		screen.SetForm(DisputeForm{TicketNumber: "123", Reason: "wrong plate"})

		s.mockAPI.EXPECT().SubmitDispute(gomock.Any(), models.DisputeRequest{
			Ticket: "123", FiledBy: 42, Reason: "wrong plate",
		}).Return(&models.DisputeReceipt{}, nil)

		s.Require().NoError(screen.Submit())
		s.Equal(DisputeForm{}, screen.Form())
		s.Equal(alertRecord{TitleDisputeSubmitted, MsgDisputeSubmitted}, s.lastAlert())
	})

	s.Run("server receipt message wins", func() {
		s.SetupTest()
		s.signIn(driver)
		screen := NewDispute(s.deps())
		s.mount(screen)
		screen.SetForm(DisputeForm{TicketNumber: "123", Reason: "wrong plate"})
		s.mockAPI.EXPECT().SubmitDispute(gomock.Any(), gomock.Any()).
			Return(&models.DisputeReceipt{Message: "Dispute submitted successfully"}, nil)

		s.Require().NoError(screen.Submit())
		s.Equal(alertRecord{TitleDisputeSubmitted, "Dispute submitted successfully"}, s.lastAlert())
	})

	s.Run("error responses and transport failures read differently", func() {
		s.SetupTest()
		s.signIn(driver)
		screen := NewDispute(s.deps())
		s.mount(screen)
		form := DisputeForm{TicketNumber: "999", Reason: "not mine"}
		screen.SetForm(form)

		s.mockAPI.EXPECT().SubmitDispute(gomock.Any(), gomock.Any()).
			Return(nil, applicationErr(api.OpSubmitDispute, http.StatusNotFound, "Ticket not found"))
		s.Error(screen.Submit())
		s.Equal(alertRecord{TitleError, "Ticket not found"}, s.lastAlert())
		s.Equal(form, screen.Form())

		s.mockAPI.EXPECT().SubmitDispute(gomock.Any(), gomock.Any()).
			Return(nil, applicationErr(api.OpSubmitDispute, http.StatusInternalServerError, ""))
		s.Error(screen.Submit())
		s.Equal(alertRecord{TitleError, MsgUnexpectedError}, s.lastAlert())

		s.mockAPI.EXPECT().SubmitDispute(gomock.Any(), gomock.Any()).Return(nil, transportErr(api.OpSubmitDispute))
		s.Error(screen.Submit())
		s.Equal(alertRecord{TitleError, MsgDisputeTransport}, s.lastAlert())
	})

	s.Run("both fields are required", func() {
		s.SetupTest()
		s.signIn(driver)
		screen := NewDispute(s.deps())
		s.mount(screen)
		screen.SetForm(DisputeForm{TicketNumber: "123"})

		s.True(dErrors.HasCode(screen.Submit(), dErrors.CodeValidation))
		s.Equal(alertRecord{TitleError, MsgDisputeFields}, s.lastAlert())
	})
}

func (s *ScreensSuite) TestDispute_ConcurrentSubmitsSendOnce() {
	s.signIn(driver)
	screen := NewDispute(s.deps())
	s.mount(screen)
	screen.SetForm(DisputeForm{TicketNumber: "123", Reason: "wrong plate"})

	const submitters = 8
	var rejected atomic.Int32
	// The winning request is held open until every other submit has bounced.
	s.mockAPI.EXPECT().SubmitDispute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.DisputeRequest) (*models.DisputeReceipt, error) {
			deadline := time.Now().Add(5 * time.Second)
			for rejected.Load() < submitters-1 && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			return &models.DisputeReceipt{}, nil
		}).Times(1)

	result := testutil.RunConcurrent(submitters, func(int) error {
		err := screen.Submit()
		if dErrors.HasCode(err, dErrors.CodeBusy) {
			rejected.Add(1)
		}
		return err
	})

	s.Equal(int32(submitters), result.Total())
	s.Equal(int32(1), result.Successes)
	s.Equal(int32(submitters-1), result.Busy)
	s.Equal(DisputeForm{}, screen.Form())
	s.False(screen.Busy())
}

func (s *ScreensSuite) TestMyDisputes() {
	s.Run("empty", func() {
		s.SetupTest()
		s.signIn(driver)
		s.mockAPI.EXPECT().Disputes(gomock.Any(), domain.UserID(42)).Return([]models.Dispute{}, nil)

		screen := NewMyDisputes(s.deps())
		s.mount(screen)
		s.Equal(MyDisputesView{Message: MsgNoDisputes}, screen.View())
	})

	s.Run("failure is swallowed", func() {
		s.SetupTest()
		s.signIn(driver)
		s.mockAPI.EXPECT().Disputes(gomock.Any(), gomock.Any()).
			Return(nil, applicationErr(api.OpDisputes, http.StatusInternalServerError, ""))

		screen := NewMyDisputes(s.deps())
		s.mount(screen)
		s.Empty(s.alerts())
		s.Equal(MsgNoDisputes, screen.View().Message)
	})

	s.Run("lists filed disputes", func() {
		s.SetupTest()
		s.signIn(driver)
		s.mockAPI.EXPECT().Disputes(gomock.Any(), gomock.Any()).
			Return([]models.Dispute{{ID: 1, Ticket: 3, FiledBy: 42, Reason: "wrong plate", Status: "Pending"}}, nil)

		screen := NewMyDisputes(s.deps())
		s.mount(screen)
		view := screen.View()
		s.Len(view.Disputes, 1)
		s.Empty(view.Message)
	})
}

func (s *ScreensSuite) TestPayment() {
	s.Run("lookup fills the fine", func() {
		s.SetupTest()
		s.signIn(driver)
		screen := NewPayment(s.deps())
		s.mount(screen)
		screen.SetTicketID("9")
		s.mockAPI.EXPECT().TicketFine(gomock.Any(), "9").Return(&models.TicketFine{ID: 9, FineAmount: "1500.00"}, nil)

		s.Require().NoError(screen.LookupFine())
		s.Equal(domain.Amount("1500.00"), screen.Form().Fine)

		screen.SetTicketID("10")
		s.True(screen.Form().Fine.IsZero())
	})

	s.Run("lookup failures", func() {
		s.SetupTest()
		s.signIn(driver)
		screen := NewPayment(s.deps())
		s.mount(screen)

		s.True(dErrors.HasCode(screen.LookupFine(), dErrors.CodeValidation))
		s.Equal(alertRecord{TitleError, MsgEnterTicketID}, s.lastAlert())

		screen.SetTicketID("404")
		s.mockAPI.EXPECT().TicketFine(gomock.Any(), "404").
			Return(nil, applicationErr(api.OpTicketFine, http.StatusNotFound, "Ticket not found"))
		s.Error(screen.LookupFine())
		s.Equal(alertRecord{TitleError, MsgTicketNotFound}, s.lastAlert())

		s.mockAPI.EXPECT().TicketFine(gomock.Any(), "404").Return(nil, transportErr(api.OpTicketFine))
		s.Error(screen.LookupFine())
		s.Equal(alertRecord{TitleError, MsgFineLookupFailed}, s.lastAlert())
	})

	s.Run("receipt is required", func() {
		s.SetupTest()
		s.signIn(driver)
		screen := NewPayment(s.deps())
		s.mount(screen)
		screen.SetTicketID("9")

		s.True(dErrors.HasCode(screen.Submit(), dErrors.CodeValidation))
		s.Equal(alertRecord{TitleError, MsgReceiptRequired}, s.lastAlert())
	})

	s.Run("success returns to the dashboard", func() {
		s.SetupTest()
		s.signIn(driver)
		s.Require().NoError(s.nav.Open(navigation.Payment))
		screen := NewPayment(s.deps())
		s.mount(screen)
		screen.SetTicketID("9")
		screen.PickReceipt("file:///tmp/receipt.jpg")
		s.mockAPI.EXPECT().TicketFine(gomock.Any(), "9").Return(&models.TicketFine{FineAmount: "1500.00"}, nil)
		s.Require().NoError(screen.LookupFine())

		s.mockAPI.EXPECT().AddPayment(gomock.Any(), models.PaymentRequest{
			TicketID: "9", UserID: 42, Amount: "1500.00", ReceiptURI: "file:///tmp/receipt.jpg",
		}).Return(nil)

		s.Require().NoError(screen.Submit())
		s.Equal(alertRecord{TitleSuccess, MsgPaymentRecorded}, s.lastAlert())
		s.Equal(navigation.DriverDashboard, s.nav.Current().Screen)
		s.Equal(PaymentForm{}, screen.Form())
	})

	s.Run("rejected payment shows the server error", func() {
		s.SetupTest()
		s.signIn(driver)
		screen := NewPayment(s.deps())
		s.mount(screen)
		screen.SetTicketID("9")
		screen.PickReceipt("file:///tmp/receipt.jpg")

		s.mockAPI.EXPECT().AddPayment(gomock.Any(), gomock.Any()).
			Return(applicationErr(api.OpAddPayment, http.StatusBadRequest, "Ticket is already paid"))
		s.Error(screen.Submit())
		s.Equal(alertRecord{TitleError, "Ticket is already paid"}, s.lastAlert())

		s.mockAPI.EXPECT().AddPayment(gomock.Any(), gomock.Any()).
			Return(applicationErr(api.OpAddPayment, http.StatusInternalServerError, ""))
		s.Error(screen.Submit())
		s.Equal(alertRecord{TitleError, MsgPaymentFailed}, s.lastAlert())

		s.mockAPI.EXPECT().AddPayment(gomock.Any(), gomock.Any()).
			Return(dErrors.New(dErrors.CodeInvalidInput, "receipt image is empty"))
		s.Error(screen.Submit())
		s.Equal(alertRecord{TitleError, MsgPaymentTransport}, s.lastAlert())
		s.Equal(navigation.DriverDashboard, s.nav.Current().Screen)
	})
}
