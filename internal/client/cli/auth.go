package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkernel/internal/client/client"
	"github.com/dmitrijs2005/authkernel/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password, creates the account and
// saves the returned token.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return err
	}

	a.email = user.Email
	if err := a.saveToken(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (%s)\n", user.Name, user.Email)
	return nil
}

// Login prompts for email and password and saves the returned token.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return err
	}

	a.email = user.Email
	if err := a.saveToken(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s\n", user.Name)
	return nil
}

// WhoAmI prints the profile of the user the saved token belongs to.
func (a *App) WhoAmI(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.client.Profile(ctx)
	if err != nil {
		a.reportSessionError(err)
		return err
	}

	a.email = user.Email
	fmt.Fprintf(a.out, "%s <%s> id=%s\n", user.Name, user.Email, user.ID)
	return nil
}

// Verify checks the saved token and prints its claims.
func (a *App) Verify(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	claims, err := a.client.Verify(ctx)
	if err != nil {
		a.reportSessionError(err)
		return err
	}

	fmt.Fprintf(a.out, "Token valid for %s until %s\n", claims.Email, claims.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

// Logout discards the token locally. The server holds no session state.
func (a *App) Logout(ctx context.Context) error {
	a.client.SetToken("")
	a.email = ""
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) saveToken() error {
	if err := a.tokens.Save(a.client.Token()); err != nil {
		fmt.Fprintf(a.out, "Could not save token: %v\n", err)
		return err
	}
	return nil
}

// reportSessionError prints err; a rejected token is dropped so the prompt
// shows the user as logged out.
func (a *App) reportSessionError(err error) {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "Not logged in")
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(a.out, "Session is no longer valid, please log in again")
		a.client.SetToken("")
		a.email = ""
		_ = a.tokens.Clear()
	default:
		fmt.Fprintf(a.out, "Request failed: %v\n", err)
	}
}
