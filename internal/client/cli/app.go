package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/authkernel/internal/client/client"
	"github.com/dmitrijs2005/authkernel/internal/client/config"
)

type tokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type App struct {
	config *config.Config
	client client.Client
	tokens tokenStore
	reader *bufio.Reader
	out    io.Writer
	email  string
}

// NewApp connects to the configured server and restores a saved token.
func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewAuthClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	a := newApp(c, apiClient, client.NewTokenStore(c.TokenFile), os.Stdin, os.Stdout)
	if err := a.restoreToken(); err != nil {
		fmt.Fprintf(a.out, "Could not read saved token: %v\n", err)
	}
	return a, nil
}

func newApp(c *config.Config, cl client.Client, ts tokenStore, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		client: cl,
		tokens: ts,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) restoreToken() error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.client.SetToken(token)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}

func (a *App) status() string {
	switch {
	case a.email != "":
		return a.email
	case a.isLoggedIn():
		return "session"
	default:
		return "anonymous"
	}
}

// Run starts the REPL on the app's input and closes the connection after.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	fmt.Fprintln(a.out, "authkernel CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
