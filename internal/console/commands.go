package console

import (
	"fmt"
	"strings"

	"tcis/internal/navigation"
	"tcis/internal/screens"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
)

const globalHelp = `commands: help | where | go <screen> | refresh | quit`

// screenHelp lists the screen-specific commands.
var screenHelp = map[navigation.Screen]string{
	navigation.SignIn:          "login <username> <password> [police|driver] | signup | role <police|driver>",
	navigation.SignUp:          "register <first> <last> <username> <password> <mobile> [police|driver] | signin",
	navigation.Dashboard:       "refresh",
	navigation.AddTicket:       "violations | drivers | violation <id> | driver <id> | set <license|plate|location|fine|due> <value> | sign <data-uri> | unsign | submit",
	navigation.SearchTickets:   "range <yyyy-mm-dd> <yyyy-mm-dd> | search",
	navigation.TicketsList:     "refresh | print <ticket-id>",
	navigation.DriverDashboard: "open <screen>",
	navigation.ActiveTickets:   "refresh | select <ticket-id> | close",
	navigation.FileDisputes:    "dispute <ticket-number> <reason...>",
	navigation.MyDisputes:      "refresh",
	navigation.Payment:         "ticket <id> | lookup | receipt <file-uri> | pay",
	navigation.Profile:         "set <first|last|mobile|password|confirm> <value> | save | logout",
}

func (a *App) dispatch(line string) error {
	cmd, args := splitCommand(line)

	switch cmd {
	case "quit", "exit":
		return ErrQuit
	case "help":
		a.presenter.Printf("%s\n%s\n", globalHelp, screenHelp[a.shown.Screen])
		return nil
	case "where":
		a.presenter.Printf("%s\n", a.shown)
		return nil
	case "go":
		return a.deps.Navigator.Open(a.lookupScreen(args))
	case "refresh":
		if r, ok := a.current().(interface{ Refresh() error }); ok {
			return r.Refresh()
		}
	}

	switch c := a.current().(type) {
	case *screens.SignIn:
		return a.signIn(c, cmd, args)
	case *screens.SignUp:
		return a.signUp(c, cmd, args)
	case *screens.AddTicket:
		return a.addTicket(c, cmd, args)
	case *screens.Search:
		return a.search(c, cmd, args)
	case *screens.TicketsList:
		if cmd == "print" && len(args) == 1 {
			id, err := domain.ParseTicketID(args[0])
			if err != nil {
				return err
			}
			location, err := c.Print(id)
			if err == nil {
				a.presenter.Printf("printed to %s\n", location)
			}
			return err
		}
	case *screens.DriverDashboard:
		if cmd == "open" {
			return c.Follow(a.lookupScreen(args))
		}
	case *screens.ActiveTickets:
		switch {
		case cmd == "select" && len(args) == 1:
			id, err := domain.ParseTicketID(args[0])
			if err != nil {
				return err
			}
			return c.Select(id)
		case cmd == "close":
			c.CloseDetail()
			return nil
		}
	case *screens.Dispute:
		if cmd == "dispute" && len(args) >= 1 {
			c.SetForm(screens.DisputeForm{TicketNumber: args[0], Reason: strings.Join(args[1:], " ")})
			return c.Submit()
		}
	case *screens.Payment:
		return a.payment(c, cmd, args)
	case *screens.Profile:
		return a.profile(c, cmd, args)
	}
	return unknownCommand(line)
}

func (a *App) signIn(c *screens.SignIn, cmd string, args []string) error {
	switch cmd {
	case "login":
		if len(args) < 2 {
			break
		}
		role := a.shown.Stack.Role()
		if len(args) > 2 {
			r, err := domain.ParseRole(args[2])
			if err != nil {
				return err
			}
			role = r
		}
		return c.Submit(screens.SignInForm{Username: args[0], Password: args[1], Role: role})
	case "signup":
		return c.ShowSignUp()
	case "role":
		if len(args) != 1 {
			break
		}
		r, err := domain.ParseRole(args[0])
		if err != nil {
			return err
		}
		return a.deps.Navigator.SwitchAuth(r)
	}
	return unknownCommand(cmd)
}

func (a *App) signUp(c *screens.SignUp, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) < 5 {
			break
		}
		role := a.shown.Stack.Role()
		if len(args) > 5 {
			r, err := domain.ParseRole(args[5])
			if err != nil {
				return err
			}
			role = r
		}
		return c.Submit(screens.SignUpForm{
			FirstName: args[0], LastName: args[1], Username: args[2],
			Password: args[3], MobileNumber: args[4], Role: role,
		})
	case "signin":
		return c.ShowSignIn()
	}
	return unknownCommand(cmd)
}

func (a *App) addTicket(c *screens.AddTicket, cmd string, args []string) error {
	switch {
	case cmd == "violations":
		for _, v := range c.Violations() {
			a.presenter.Printf("  %s  %s (%s)\n", v.ID, v.Name, v.PenaltyAmount)
		}
		return nil
	case cmd == "drivers":
		for _, d := range c.Drivers() {
			a.presenter.Printf("  %s  %s\n", d.ID, d.FullName())
		}
		return nil
	case cmd == "violation" && len(args) == 1:
		id, err := domain.ParseViolationID(args[0])
		if err != nil {
			return err
		}
		return c.SelectViolation(id)
	case cmd == "driver" && len(args) == 1:
		id, err := domain.ParseUserID(args[0])
		if err != nil {
			return err
		}
		c.SelectDriver(id)
		return nil
	case cmd == "set" && len(args) >= 2:
		f := c.Form()
		value := strings.Join(args[1:], " ")
		switch args[0] {
		case "license":
			f.LicenseNo = value
		case "plate":
			f.PlateNumber = value
		case "location":
			f.Location = value
		case "fine":
			amount, err := domain.ParseAmount(value)
			if err != nil {
				return err
			}
			f.Fine = amount
		case "due":
			due, err := domain.ParseDate(value)
			if err != nil {
				return err
			}
			f.DueDate = due
		default:
			return unknownCommand("set " + args[0])
		}
		c.SetForm(f)
		return nil
	case cmd == "sign" && len(args) == 1:
		c.CaptureSignature(args[0])
		return nil
	case cmd == "unsign":
		c.ClearSignature()
		return nil
	case cmd == "submit":
		return c.Submit()
	}
	return unknownCommand(cmd)
}

func (a *App) search(c *screens.Search, cmd string, args []string) error {
	switch {
	case cmd == "range" && len(args) == 2:
		start, err := domain.ParseDate(args[0])
		if err != nil {
			return err
		}
		end, err := domain.ParseDate(args[1])
		if err != nil {
			return err
		}
		c.SetRange(start, end)
		return nil
	case cmd == "search":
		return c.Submit()
	}
	return unknownCommand(cmd)
}

func (a *App) payment(c *screens.Payment, cmd string, args []string) error {
	switch {
	case cmd == "ticket" && len(args) == 1:
		c.SetTicketID(args[0])
		return nil
	case cmd == "lookup":
		return c.LookupFine()
	case cmd == "receipt" && len(args) == 1:
		c.PickReceipt(args[0])
		return nil
	case cmd == "pay":
		return c.Submit()
	}
	return unknownCommand(cmd)
}

func (a *App) profile(c *screens.Profile, cmd string, args []string) error {
	switch {
	case cmd == "set" && len(args) >= 2:
		f := c.Form()
		value := strings.Join(args[1:], " ")
		switch args[0] {
		case "first":
			f.FirstName = value
		case "last":
			f.LastName = value
		case "mobile":
			f.MobileNumber = value
		case "password":
			f.Password = value
		case "confirm":
			f.ConfirmPassword = value
		default:
			return unknownCommand("set " + args[0])
		}
		c.SetForm(f)
		return nil
	case cmd == "save":
		return c.Save()
	case cmd == "logout":
		return c.Logout()
	}
	return unknownCommand(cmd)
}

// lookupScreen matches a typed screen name against the current drawer, ignoring case.
// Unknown names pass through so the navigator can reject them.
func (a *App) lookupScreen(args []string) navigation.Screen {
	name := strings.Join(args, " ")
	drawer, err := navigation.Drawer(a.shown.Stack.Role())
	if err != nil {
		return navigation.Screen(name)
	}
	for _, s := range drawer {
		if strings.EqualFold(string(s), name) {
			return s
		}
	}
	return navigation.Screen(name)
}

func splitCommand(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func unknownCommand(cmd string) error {
	return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown command %q, try help", cmd))
}
