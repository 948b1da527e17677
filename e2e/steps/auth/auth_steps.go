package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"tcis/e2e/steps/common"
	"tcis/internal/navigation"
	"tcis/internal/screens"
	"tcis/pkg/domain"
)

// RegisterSteps registers sign-in, sign-up and logout steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc common.TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I am on the (police|driver) sign in screen$`, steps.onSignIn)
	ctx.Step(`^I sign in as "([^"]*)" with password "([^"]*)" as (police|driver)$`, steps.signIn)
	ctx.Step(`^I sign up as (police|driver) "([^"]*)" "([^"]*)" with username "([^"]*)" and password "([^"]*)"$`, steps.signUp)
	ctx.Step(`^I am signed in as (police|driver) "([^"]*)" with password "([^"]*)"$`, steps.signedIn)
	ctx.Step(`^the signed in identity should be (\d+) "([^"]*)" "([^"]*)" (Police|Driver)$`, steps.identityShouldBe)
	ctx.Step(`^no session should be active$`, steps.noSession)
	ctx.Step(`^I log out$`, steps.logOut)
}

type authSteps struct {
	tc common.TestContext
}

func (s *authSteps) onSignIn(_ context.Context, role string) error {
	r, err := domain.ParseRole(role)
	if err != nil {
		return err
	}
	nav := s.tc.Navigator()
	if nav.Current().Stack.Role() != r {
		if err := nav.SwitchAuth(r); err != nil {
			return err
		}
	}
	return common.OpenController(s.tc, navigation.SignIn)
}

func (s *authSteps) signIn(_ context.Context, username, password, role string) error {
	r, err := domain.ParseRole(role)
	if err != nil {
		return err
	}
	screen, ok := s.tc.Screen().(*screens.SignIn)
	if !ok {
		return fmt.Errorf("not on the sign in screen")
	}
	s.tc.SetLastError(screen.Submit(screens.SignInForm{Username: username, Password: password, Role: r}))
	return nil
}

func (s *authSteps) signUp(_ context.Context, role, first, last, username, password string) error {
	r, err := domain.ParseRole(role)
	if err != nil {
		return err
	}
	if err := s.onSignIn(context.Background(), role); err != nil {
		return err
	}
	if err := s.tc.Navigator().ShowSignUp(); err != nil {
		return err
	}
	if err := common.OpenController(s.tc, navigation.SignUp); err != nil {
		return err
	}
	screen := s.tc.Screen().(*screens.SignUp)
	s.tc.SetLastError(screen.Submit(screens.SignUpForm{
		FirstName: first, LastName: last, Username: username,
		Password: password, MobileNumber: "09171234567", Role: r,
	}))
	return nil
}

// signedIn runs the whole sign-in flow and mounts the drawer's first screen.
func (s *authSteps) signedIn(ctx context.Context, role, username, password string) error {
	if err := s.onSignIn(ctx, role); err != nil {
		return err
	}
	if err := s.signIn(ctx, username, password, role); err != nil {
		return err
	}
	if err := s.tc.LastError(); err != nil {
		return fmt.Errorf("sign in failed: %w", err)
	}
	return common.OpenController(s.tc, s.tc.Navigator().Current().Screen)
}

func (s *authSteps) identityShouldBe(_ context.Context, id int64, first, last, role string) error {
	got, err := s.tc.Session().Identity()
	if err != nil {
		return err
	}
	if int64(got.UserID) != id || got.FirstName != first || got.LastName != last || got.Role.String() != role {
		return fmt.Errorf("unexpected identity %+v", got)
	}
	return nil
}

func (s *authSteps) noSession(context.Context) error {
	if sess, ok := s.tc.Session().Current(); ok {
		return fmt.Errorf("expected no session but %s is signed in", sess.Identity.DisplayName())
	}
	return nil
}

func (s *authSteps) logOut(context.Context) error {
	if err := s.tc.Navigator().Open(navigation.Profile); err != nil {
		return err
	}
	if err := common.OpenController(s.tc, navigation.Profile); err != nil {
		return err
	}
	profile := s.tc.Screen().(*screens.Profile)
	s.tc.SetLastError(profile.Logout())
	return nil
}
