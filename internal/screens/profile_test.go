package screens

import (
	"net/http"

	"go.uber.org/mock/gomock"

	"tcis/internal/api"
	"tcis/internal/api/models"
	"tcis/internal/navigation"
	"tcis/internal/session"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
)

func (s *ScreensSuite) TestProfile_Load() {
	s.Run("fills the form", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().Profile(gomock.Any(), domain.UserID(7)).
			Return(&models.Profile{ID: 7, FirstName: "Jane", LastName: "Doe", MobileNumber: "0917"}, nil)

		screen := NewProfile(s.deps())
		s.mount(screen)

		s.Equal(ProfileForm{FirstName: "Jane", LastName: "Doe", MobileNumber: "0917"}, screen.Form())
		s.Equal("0917", screen.Stored().MobileNumber)
	})

	s.Run("failure message depends on the drawer", func() {
		s.SetupTest()
		s.signIn(officer)
		s.mockAPI.EXPECT().Profile(gomock.Any(), gomock.Any()).Return(nil, transportErr(api.OpProfile))
		screen := NewProfile(s.deps())
		s.Error(screen.Mount(s.ctx))
		screen.Unmount()
		s.Equal(alertRecord{TitleError, MsgPoliceProfileFailed}, s.lastAlert())

		s.SetupTest()
		s.signIn(driver)
		s.mockAPI.EXPECT().Profile(gomock.Any(), gomock.Any()).Return(nil, transportErr(api.OpProfile))
		screen = NewProfile(s.deps())
		s.Error(screen.Mount(s.ctx))
		screen.Unmount()
		s.Equal(alertRecord{TitleError, MsgDriverProfileFailed}, s.lastAlert())
	})
}

func (s *ScreensSuite) mountProfile(id session.Identity) *Profile {
	s.signIn(id)
	s.mockAPI.EXPECT().Profile(gomock.Any(), id.UserID).
		Return(&models.Profile{ID: id.UserID, FirstName: id.FirstName, LastName: id.LastName, MobileNumber: "0917"}, nil)
	screen := NewProfile(s.deps())
	s.mount(screen)
	return screen
}

func (s *ScreensSuite) TestProfile_Save() {
	s.Run("update then re-fetch shows the new values", func() {
		s.SetupTest()
		screen := s.mountProfile(officer)
		screen.SetForm(ProfileForm{FirstName: "Janet", LastName: "Doe", MobileNumber: "0918", Password: "new", ConfirmPassword: "new"})

		gomock.InOrder(
			s.mockAPI.EXPECT().UpdateProfile(gomock.Any(), domain.UserID(7), models.ProfileUpdate{
				FirstName: "Janet", LastName: "Doe", MobileNumber: "0918", Password: "new",
			}).Return(&models.Profile{ID: 7, FirstName: "Janet", LastName: "Doe", MobileNumber: "0918"}, nil),
			s.mockAPI.EXPECT().Profile(gomock.Any(), domain.UserID(7)).
				Return(&models.Profile{ID: 7, FirstName: "Janet", LastName: "Doe", MobileNumber: "0918"}, nil),
		)

		s.Require().NoError(screen.Save())
		s.Equal(alertRecord{TitleSuccess, MsgProfileUpdated}, s.lastAlert())
		s.Equal(ProfileForm{FirstName: "Janet", LastName: "Doe", MobileNumber: "0918"}, screen.Form())
		id, err := s.sessions.Identity()
		s.Require().NoError(err)
		s.Equal("Janet Doe", id.DisplayName())
	})

	s.Run("stale re-fetch is tolerated", func() {
		s.SetupTest()
		screen := s.mountProfile(officer)
		screen.SetForm(ProfileForm{FirstName: "Janet", LastName: "Doe", MobileNumber: "0918"})

		s.mockAPI.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.Profile{}, nil)
		s.mockAPI.EXPECT().Profile(gomock.Any(), gomock.Any()).
			Return(&models.Profile{ID: 7, FirstName: "Jane", LastName: "Doe", MobileNumber: "0917"}, nil)

		s.Require().NoError(screen.Save())
		s.Equal("Jane", screen.Stored().FirstName)
	})

	s.Run("failed re-fetch keeps what was typed", func() {
		s.SetupTest()
		screen := s.mountProfile(officer)
		screen.SetForm(ProfileForm{FirstName: "Janet", LastName: "Doe", MobileNumber: "0918", Password: "x", ConfirmPassword: "x"})

		s.mockAPI.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.Profile{}, nil)
		s.mockAPI.EXPECT().Profile(gomock.Any(), gomock.Any()).Return(nil, transportErr(api.OpProfile))

		s.Require().NoError(screen.Save())
		s.Equal(ProfileForm{FirstName: "Janet", LastName: "Doe", MobileNumber: "0918"}, screen.Form())
		s.Equal(alertRecord{TitleSuccess, MsgProfileUpdated}, s.lastAlert())
	})

	s.Run("mismatched passwords are caught locally", func() {
		s.SetupTest()
		screen := s.mountProfile(officer)
		screen.SetForm(ProfileForm{FirstName: "Jane", Password: "a", ConfirmPassword: "b"})

		s.True(dErrors.HasCode(screen.Save(), dErrors.CodeValidation))
		s.Equal(alertRecord{TitleError, MsgPasswordsMismatch}, s.lastAlert())
	})

	s.Run("rejected update shows the server message", func() {
		s.SetupTest()
		screen := s.mountProfile(driver)
		s.mockAPI.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, applicationErr(api.OpUpdateProfile, http.StatusBadRequest, "Mobile number is invalid"))
		s.Error(screen.Save())
		s.Equal(alertRecord{TitleError, "Mobile number is invalid"}, s.lastAlert())

		s.mockAPI.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, transportErr(api.OpUpdateProfile))
		s.Error(screen.Save())
		s.Equal(alertRecord{TitleError, MsgProfileUpdateFailed}, s.lastAlert())
	})
}

func (s *ScreensSuite) TestProfile_Logout() {
	s.Run("returns to the role's sign-in and ends the session", func() {
		s.SetupTest()
		screen := s.mountProfile(driver)
		s.Require().NoError(s.nav.Open(navigation.Profile))
		s.mockAPI.EXPECT().Logout(gomock.Any()).Return(nil)

		s.Require().NoError(screen.Logout())

		s.Equal(alertRecord{TitleLoggedOut, MsgLoggedOut}, s.lastAlert())
		s.Equal(navigation.State{Stack: navigation.DriverAuth, Screen: navigation.SignIn}, s.nav.Current())
		_, ok := s.sessions.Current()
		s.False(ok)
	})

	s.Run("unreachable backend keeps the user signed in", func() {
		s.SetupTest()
		screen := s.mountProfile(officer)
		s.mockAPI.EXPECT().Logout(gomock.Any()).Return(transportErr(api.OpLogout))

		s.Error(screen.Logout())

		s.Equal(alertRecord{TitleError, MsgLogoutFailed}, s.lastAlert())
		s.Equal(navigation.PoliceMain, s.nav.Current().Stack)
		_, ok := s.sessions.Current()
		s.True(ok)
	})
}
