package cli

import (
	"context"
	"fmt"
	"os"
)

// Login prompts for credentials and authenticates against the API. The
// identifier may be a username or an email.
func (a *App) Login(ctx context.Context) error {

	identifier, err := GetSimpleText(a.reader, "Enter username or email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.client.Login(ctx, identifier, string(password))
	if err != nil {
		fmt.Println("Login failed:", err.Error())
		return err
	}

	a.user = user
	fmt.Printf("Logged in as %s\n", user.Username)
	return nil
}

// Logout forgets the remembered account. The server keeps no session, so
// there is nothing to revoke remotely.
func (a *App) Logout(ctx context.Context) error {
	a.user = nil
	fmt.Println("Logged out")
	return nil
}
