// Package cli is a terminal front end for the account backend: a small REPL
// that drives register, login and user listing over the HTTP API.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/guluwater/officetools-server/internal/client/api"
	"github.com/guluwater/officetools-server/internal/client/config"
)

type App struct {
	config *config.Config
	client *api.Client
	user   *api.User
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	client := api.New(c.ServerBaseURL, c.RequestTimeout)
	return &App{config: c, client: client, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) showLogin() string {
	if a.user == nil {
		return "(not logged in)"
	}
	return a.user.Username
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
