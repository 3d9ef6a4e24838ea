package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/qaforum/internal/client/api"
)

// Register prompts for the account fields and creates the account. It does
// not log the user in.
func (a *App) Register(ctx context.Context) error {
	var r api.Registration
	var err error

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter username", &r.UserName},
		{"Enter first name", &r.FirstName},
		{"Enter last name", &r.LastName},
		{"Enter email", &r.Email},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)
	r.Password = string(password)

	u, err := a.api.Register(ctx, r)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d). You can log in now.\n", u.UserName, u.UserID)
	return nil
}

// Login prompts for credentials and opens a session. An existing session is
// replaced.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	res, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.setSession(res.User.UserID, res.User.UserName)
	fmt.Fprintf(a.out, "Welcome, %s!\n", res.User.FirstName)
	return nil
}

// Logout revokes the token on the server and forgets it locally.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	err := a.api.Logout(ctx)
	a.clearSession()
	if err != nil && !errors.Is(err, api.ErrUnauthorized) {
		return err
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s, err := a.api.Check(ctx)
	if err != nil {
		return a.check(err)
	}
	a.setSession(s.UserID, s.UserName)
	fmt.Fprintf(a.out, "%s (id %d)\n", s.UserName, s.UserID)
	return nil
}
