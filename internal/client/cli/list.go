package cli

import (
	"context"
	"fmt"
	"time"
)

// ListUsers fetches and prints every account's public fields.
func (a *App) ListUsers(ctx context.Context) error {

	list, err := a.client.ListUsers(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	if len(list) == 0 {
		fmt.Println("No users registered yet")
		return nil
	}

	for _, u := range list {
		created := ""
		if u.CreatedAt != nil {
			created = u.CreatedAt.Format(time.RFC3339)
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, created)
	}
	return nil
}
