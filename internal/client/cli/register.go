package cli

import (
	"context"
	"fmt"
	"os"
)

// Register prompts for account details and creates the account over the API.
func (a *App) Register(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.client.Register(ctx, username, email, string(password))
	if err != nil {
		fmt.Println("Registration failed:", err.Error())
		return err
	}

	fmt.Printf("Registered %s (id %s)\n", user.Username, user.ID)
	return nil
}
