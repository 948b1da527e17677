package screens

import (
	"context"
	"fmt"

	"tcis/internal/api"
	"tcis/internal/api/models"
	"tcis/internal/navigation"
	"tcis/internal/session"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
	"tcis/pkg/validation"
)

// Sign-in and sign-up messages.
const (
	MsgFillAllFields      = "Please fill in all fields"
	MsgLoginFallback      = "Invalid credentials. Please try again."
	MsgAllFieldsRequired  = "All fields are required."
	MsgUsernameTaken      = "This username is already taken. Please choose another."
	MsgSignupFallback     = "Unable to sign up. Please try again."
	MsgAccountCreated     = "Account created successfully!"
	msgRoleMismatchFormat = "You are not registered as a %s"
)

// SignInForm is what the user typed on the sign-in screen.
type SignInForm struct {
	Username string      `validate:"notblank"`
	Password string      `validate:"required"`
	Role     domain.Role `validate:"required"`
}

// SignIn authenticates and routes into the drawer of the returned role.
type SignIn struct {
	base
}

func NewSignIn(deps Deps) *SignIn {
	return &SignIn{base: newBase(navigation.SignIn, deps)}
}

func (s *SignIn) Mount(ctx context.Context) error {
	s.start(ctx)
	return nil
}

// Submit logs in. A role different from the requested one is rejected: no session
// begins and the graph does not move.
func (s *SignIn) Submit(form SignInForm) error {
	if validation.Validate(&form) != nil {
		return s.invalid(MsgFillAllFields)
	}
	ctx, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	resp, err := s.deps.API.Login(ctx, models.LoginRequest{
		Username: form.Username,
		Password: form.Password,
		Role:     form.Role,
	})
	if s.discarded(ctx) {
		return errUnmounted
	}
	if err != nil {
		s.alert(TitleLoginFailed, api.Message(err, MsgLoginFallback))
		return err
	}
	if resp.Role != form.Role {
		msg := fmt.Sprintf(msgRoleMismatchFormat, form.Role)
		s.alert(TitleLoginFailed, msg)
		return dErrors.New(dErrors.CodeRoleMismatch, msg)
	}

	return s.enter(session.Identity{
		UserID:    resp.UserID,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Role:      resp.Role,
	}, s.deps.Navigator.SignedIn)
}

// enter begins a session for id and moves into its drawer. A rejected transition
// abandons the session so no one is signed in behind the auth stack.
func (b *base) enter(id session.Identity, transition func(domain.Role) error) error {
	sess, err := b.deps.Session.Begin(id)
	if err != nil {
		return err
	}
	if err := transition(id.Role); err != nil {
		b.deps.Session.Abandon(sess.ID)
		return err
	}
	return nil
}

// ShowSignUp switches the auth stack to its sign-up screen.
func (s *SignIn) ShowSignUp() error {
	return s.deps.Navigator.ShowSignUp()
}

// SignUpForm is what the user typed on the sign-up screen.
type SignUpForm struct {
	FirstName    string      `validate:"notblank"`
	LastName     string      `validate:"notblank"`
	Username     string      `validate:"notblank"`
	Password     string      `validate:"required"`
	MobileNumber string      `validate:"notblank"`
	Role         domain.Role `validate:"required"`
}

// SignUp registers an account and enters the new user's drawer.
type SignUp struct {
	base
}

func NewSignUp(deps Deps) *SignUp {
	return &SignUp{base: newBase(navigation.SignUp, deps)}
}

func (s *SignUp) Mount(ctx context.Context) error {
	s.start(ctx)
	return nil
}

// Submit creates the account. A taken username gets its own message.
func (s *SignUp) Submit(form SignUpForm) error {
	if validation.Validate(&form) != nil {
		return s.invalid(MsgAllFieldsRequired)
	}
	ctx, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	resp, err := s.deps.API.Signup(ctx, models.SignupRequest{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Username:     form.Username,
		Password:     form.Password,
		MobileNumber: form.MobileNumber,
		Role:         form.Role,
	})
	if s.discarded(ctx) {
		return errUnmounted
	}
	switch {
	case api.IsUsernameTaken(err):
		s.alert(TitleSignupError, MsgUsernameTaken)
		return err
	case err != nil:
		s.alert(TitleError, api.Message(err, MsgSignupFallback))
		return err
	}

	s.alert(TitleSuccess, MsgAccountCreated)
	return s.enter(session.Identity{
		UserID:    resp.ID,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Role:      form.Role,
	}, s.deps.Navigator.SignedUp)
}

// ShowSignIn returns to the sign-in screen.
func (s *SignUp) ShowSignIn() error {
	return s.deps.Navigator.ShowSignIn()
}
