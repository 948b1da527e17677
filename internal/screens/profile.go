package screens

import (
	"context"

	"tcis/internal/api"
	"tcis/internal/api/models"
	"tcis/internal/navigation"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
)

// Profile messages.
const (
	MsgPoliceProfileFailed = "Unable to fetch user data."
	MsgDriverProfileFailed = "Failed to load profile data"
	MsgPasswordsMismatch   = "Passwords do not match"
	MsgProfileUpdated      = "Profile updated successfully"
	MsgProfileUpdateFailed = "Failed to update profile"
	MsgLoggedOut           = "You have been logged out successfully."
	MsgLogoutFailed        = "An error occurred while logging out."
)

// ProfileForm is the editable profile. Password and ConfirmPassword are only
// checked and sent when Password is set.
type ProfileForm struct {
	FirstName       string
	LastName        string
	MobileNumber    string
	Password        string
	ConfirmPassword string
}

// Profile edits the signed-in user's profile and logs out. Both drawers share it.
type Profile struct {
	base
	form    ProfileForm
	profile *models.Profile
}

func NewProfile(deps Deps) *Profile {
	return &Profile{base: newBase(navigation.Profile, deps)}
}

func (s *Profile) Mount(ctx context.Context) error {
	s.start(ctx)
	return s.load()
}

func (s *Profile) load() error {
	ctx, err := s.lifetime()
	if err != nil {
		return err
	}
	id, err := s.identity()
	if err != nil {
		return err
	}
	p, err := s.deps.API.Profile(ctx, id.UserID)
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		s.alert(TitleError, loadFailedMessage(id.Role))
		return err
	}
	s.mu.Lock()
	s.apply(p)
	s.mu.Unlock()
	return nil
}

func loadFailedMessage(role domain.Role) string {
	switch role {
	case domain.RoleDriver:
		return MsgDriverProfileFailed
	default:
		return MsgPoliceProfileFailed
	}
}

// apply stores p and resets the form to it. Callers hold mu.
func (s *Profile) apply(p *models.Profile) {
	s.profile = p
	s.form = ProfileForm{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		MobileNumber: p.MobileNumber,
	}
}

// Form returns the current form.
func (s *Profile) Form() ProfileForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetForm replaces the typed fields.
func (s *Profile) SetForm(f ProfileForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// Stored returns the profile as last fetched, or nil before the first fetch.
func (s *Profile) Stored() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Save updates the profile and re-fetches it. A failed re-fetch keeps what was typed.
func (s *Profile) Save() error {
	form := s.Form()
	if form.Password != "" && form.Password != form.ConfirmPassword {
		return s.invalid(MsgPasswordsMismatch)
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

	_, err = s.deps.API.UpdateProfile(ctx, id.UserID, models.ProfileUpdate{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		MobileNumber: form.MobileNumber,
		Password:     form.Password,
	})
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		s.alert(TitleError, api.Message(err, MsgProfileUpdateFailed))
		return err
	}
	s.alert(TitleSuccess, MsgProfileUpdated)
	s.deps.Session.Update(form.FirstName, form.LastName)

	fresh, err := s.deps.API.Profile(ctx, id.UserID)
	if s.discarded(ctx) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.swallow(ctx, api.OpProfile, err)
		s.form.Password, s.form.ConfirmPassword = "", ""
		return nil
	}
	s.apply(fresh)
	return nil
}

// Logout tells the backend and returns to the role's sign-in screen. Any response
// counts; only a failure to reach the backend keeps the user signed in.
func (s *Profile) Logout() error {
	ctx, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	err = s.deps.API.Logout(ctx)
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		s.alert(TitleError, MsgLogoutFailed)
		return dErrors.Wrap(err, dErrors.CodeInternal, MsgLogoutFailed)
	}
	s.alert(TitleLoggedOut, MsgLoggedOut)
	if err := s.deps.Navigator.LoggedOut(); err != nil {
		return err
	}
	s.deps.Session.Clear()
	return nil
}
