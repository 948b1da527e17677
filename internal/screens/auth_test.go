package screens

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tcis/internal/api"
	"tcis/internal/api/models"
	"tcis/internal/navigation"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
)

func (s *ScreensSuite) TestSignIn() {
	s.Run("officer login enters the police drawer with the returned identity", func() {
		s.SetupTest()
		screen := NewSignIn(s.deps())
		s.mount(screen)

		s.mockAPI.EXPECT().Login(gomock.Any(), models.LoginRequest{
			Username: "officer1", Password: "pw", Role: domain.RolePolice,
		}).Return(&models.LoginResponse{UserID: 7, FirstName: "Jane", LastName: "Doe", Role: domain.RolePolice}, nil)

		err := screen.Submit(SignInForm{Username: "officer1", Password: "pw", Role: domain.RolePolice})

		s.Require().NoError(err)
		s.Equal(navigation.State{Stack: navigation.PoliceMain, Screen: navigation.Dashboard}, s.nav.Current())
		id, err := s.sessions.Identity()
		s.Require().NoError(err)
		s.Equal(officer, id)
		s.Empty(s.alerts())
	})

	s.Run("returned role differs from the requested one", func() {
		s.SetupTest()
		screen := NewSignIn(s.deps())
		s.mount(screen)

		s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(&models.LoginResponse{UserID: 42, FirstName: "Juan", LastName: "Cruz", Role: domain.RoleDriver}, nil)

		err := screen.Submit(SignInForm{Username: "driver1", Password: "pw", Role: domain.RolePolice})

		s.True(dErrors.HasCode(err, dErrors.CodeRoleMismatch))
		s.Equal(alertRecord{TitleLoginFailed, "You are not registered as a Police"}, s.lastAlert())
		s.Equal(navigation.State{Stack: navigation.PoliceAuth, Screen: navigation.SignIn}, s.nav.Current())
		_, ok := s.sessions.Current()
		s.False(ok)
	})

	s.Run("blank fields never reach the backend", func() {
		s.SetupTest()
		screen := NewSignIn(s.deps())
		s.mount(screen)

		err := screen.Submit(SignInForm{Username: "  ", Password: "pw", Role: domain.RolePolice})

		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal(alertRecord{TitleError, MsgFillAllFields}, s.lastAlert())
	})

	s.Run("server message is shown, fallback otherwise", func() {
		s.SetupTest()
		screen := NewSignIn(s.deps())
		s.mount(screen)

		s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, applicationErr(api.OpLogin, http.StatusBadRequest, "Invalid credentials"))
		s.Error(screen.Submit(SignInForm{Username: "a", Password: "b", Role: domain.RolePolice}))
		s.Equal(alertRecord{TitleLoginFailed, "Invalid credentials"}, s.lastAlert())

		s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, transportErr(api.OpLogin))
		s.Error(screen.Submit(SignInForm{Username: "a", Password: "b", Role: domain.RolePolice}))
		s.Equal(alertRecord{TitleLoginFailed, MsgLoginFallback}, s.lastAlert())
	})
}

func (s *ScreensSuite) TestSignIn_ResultAfterUnmountIsDropped() {
	screen := NewSignIn(s.deps())
	s.Require().NoError(screen.Mount(s.ctx))

	s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ models.LoginRequest) (*models.LoginResponse, error) {
			screen.Unmount()
			<-ctx.Done()
			return &models.LoginResponse{UserID: 7, FirstName: "Jane", LastName: "Doe", Role: domain.RolePolice}, nil
		})

	err := screen.Submit(SignInForm{Username: "officer1", Password: "pw", Role: domain.RolePolice})

	s.True(dErrors.HasCode(err, dErrors.CodeUnmounted))
	s.Empty(s.alerts())
	s.Equal(navigation.PoliceAuth, s.nav.Current().Stack)
	s.False(screen.Mounted())
}

func (s *ScreensSuite) TestSignIn_RejectsSecondSubmitWhileBusy() {
	screen := NewSignIn(s.deps())
	s.mount(screen)

	started := make(chan struct{})
	finish := make(chan struct{})
	s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.LoginRequest) (*models.LoginResponse, error) {
			close(started)
			<-finish
			return nil, applicationErr(api.OpLogin, http.StatusBadRequest, "Invalid credentials")
		}).Times(1)

	done := make(chan error, 1)
	go func() {
		done <- screen.Submit(SignInForm{Username: "a", Password: "b", Role: domain.RolePolice})
	}()
	<-started

	s.True(screen.Busy())
	err := screen.Submit(SignInForm{Username: "a", Password: "b", Role: domain.RolePolice})
	s.True(dErrors.HasCode(err, dErrors.CodeBusy))

	close(finish)
	s.Error(<-done)
	s.False(screen.Busy())
}

func (s *ScreensSuite) TestSignIn_MalformedSuccessShowsFallback() {
	bodies := map[string]string{
		"not json":     `<html>ok</html>`,
		"unknown role": `{"user_id":7,"firstname":"Jane","lastname":"Doe","role":"Admin"}`,
	}
	for name, body := range bodies {
		s.Run(name, func() {
			s.SetupTest()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			s.T().Cleanup(srv.Close)

			deps := s.deps()
			deps.API = api.NewHTTPClient(srv.URL, api.WithHTTPClient(srv.Client()))
			screen := NewSignIn(deps)
			s.mount(screen)

			err := screen.Submit(SignInForm{Username: "officer1", Password: "pw", Role: domain.RolePolice})

			s.Equal(api.KindContract, api.KindOf(err))
			s.Equal(alertRecord{TitleLoginFailed, MsgLoginFallback}, s.lastAlert())
			s.Equal(navigation.PoliceAuth, s.nav.Current().Stack)
			_, ok := s.sessions.Current()
			s.False(ok)
		})
	}
}

func (s *ScreensSuite) TestSignIn_RejectedTransitionLeavesNoSession() {
	screen := NewSignIn(s.deps())
	s.mount(screen)

	s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.LoginRequest) (*models.LoginResponse, error) {
			// the graph leaves the auth stack while the request is in flight
			s.Require().NoError(s.nav.SignedIn(domain.RolePolice))
			return &models.LoginResponse{UserID: 7, FirstName: "Jane", LastName: "Doe", Role: domain.RolePolice}, nil
		})

	err := screen.Submit(SignInForm{Username: "officer1", Password: "pw", Role: domain.RolePolice})

	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	_, ok := s.sessions.Current()
	s.False(ok)
	s.Equal(0.0, testutil.ToFloat64(s.metrics.ActiveSessions))
}

func (s *ScreensSuite) TestSignUp() {
	form := SignUpForm{
		FirstName: "Juan", LastName: "Cruz", Username: "driver1",
		Password: "pw", MobileNumber: "09171234567", Role: domain.RoleDriver,
	}

	s.Run("success alerts then enters the new user's drawer", func() {
		s.SetupTest()
		s.Require().NoError(s.nav.SwitchAuth(domain.RoleDriver))
		s.Require().NoError(s.nav.ShowSignUp())
		screen := NewSignUp(s.deps())
		s.mount(screen)

		s.mockAPI.EXPECT().Signup(gomock.Any(), models.SignupRequest{
			FirstName: "Juan", LastName: "Cruz", Username: "driver1",
			Password: "pw", MobileNumber: "09171234567", Role: domain.RoleDriver,
		}).Return(&models.SignupResponse{ID: 42, FirstName: "Juan", LastName: "Cruz"}, nil)

		s.Require().NoError(screen.Submit(form))

		s.Equal(alertRecord{TitleSuccess, MsgAccountCreated}, s.lastAlert())
		s.Equal(navigation.State{Stack: navigation.DriverMain, Screen: navigation.DriverDashboard}, s.nav.Current())
		id, err := s.sessions.Identity()
		s.Require().NoError(err)
		s.Equal(driver, id)
	})

	s.Run("taken username gets its own message", func() {
		s.SetupTest()
		screen := NewSignUp(s.deps())
		s.mount(screen)

		s.mockAPI.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(nil, &api.Error{
			Operation: api.OpSignup,
			Kind:      api.KindApplication,
			Status:    http.StatusBadRequest,
			Fields:    map[string][]string{"username": {"A user with that username already exists."}},
		})

		s.Error(screen.Submit(form))
		s.Equal(alertRecord{TitleSignupError, MsgUsernameTaken}, s.lastAlert())
		s.Equal(navigation.PoliceAuth, s.nav.Current().Stack)
	})

	s.Run("rejected transition leaves no session", func() {
		s.SetupTest()
		s.Require().NoError(s.nav.SwitchAuth(domain.RoleDriver))
		screen := NewSignUp(s.deps())
		s.mount(screen)

		s.mockAPI.EXPECT().Signup(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, models.SignupRequest) (*models.SignupResponse, error) {
				s.Require().NoError(s.nav.SignedIn(domain.RoleDriver))
				return &models.SignupResponse{ID: 42, FirstName: "Juan", LastName: "Cruz"}, nil
			})

		err := screen.Submit(form)

		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		_, ok := s.sessions.Current()
		s.False(ok)
	})

	s.Run("missing field", func() {
		s.SetupTest()
		screen := NewSignUp(s.deps())
		s.mount(screen)

		incomplete := form
		incomplete.MobileNumber = ""
		err := screen.Submit(incomplete)

		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal(alertRecord{TitleError, MsgAllFieldsRequired}, s.lastAlert())
	})
}

func (s *ScreensSuite) TestAuthLinks() {
	signIn := NewSignIn(s.deps())
	signUp := NewSignUp(s.deps())

	require.NoError(s.T(), signIn.ShowSignUp())
	assert.Equal(s.T(), navigation.SignUp, s.nav.Current().Screen)
	require.NoError(s.T(), signUp.ShowSignIn())
	assert.Equal(s.T(), navigation.SignIn, s.nav.Current().Screen)
}
