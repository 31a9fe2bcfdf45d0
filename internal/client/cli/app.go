package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/client/client"
	"github.com/dmitrijs2005/forumkeeper/internal/client/config"
	"github.com/dmitrijs2005/forumkeeper/internal/client/credentials"
	"github.com/dmitrijs2005/forumkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/forumkeeper/internal/client/services"
	"github.com/dmitrijs2005/forumkeeper/internal/logging"
	"github.com/dmitrijs2005/forumkeeper/internal/metrics"
)

type App struct {
	config       *config.Config
	authService  services.AuthService
	forumService services.ForumService
	session      *services.Session
	reader       *bufio.Reader
	out          io.Writer
	logger       logging.Logger
	closers      []func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	a := &App{config: c, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	logOut := io.Writer(os.Stderr)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f.Close)
		logOut = f
	}
	logger, err := logging.New(logOut, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, err
	}
	a.logger = logger

	storeOpts, err := c.StoreOptions()
	if err != nil {
		return nil, err
	}
	store, closeStore, err := credentials.Open(ctx, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("error opening credential store: %w", err)
	}
	a.closers = append(a.closers, closeStore)

	api, err := client.NewHTTPClient(client.Options{
		BaseURL:    c.BaseURL,
		Store:      store,
		Logger:     logger,
		Timeout:    c.RequestTimeout,
		LoginRoute: c.LoginRoute,
	})
	if err != nil {
		_ = a.close()
		return nil, err
	}

	var meta metadata.Repository
	if s, ok := store.(*credentials.SQLiteStore); ok {
		meta = s.Metadata()
	}

	a.authService = services.NewAuthService(api, store, meta)
	a.forumService = services.NewForumService(api)

	if c.MetricsAddr != "" {
		a.serveMetrics(ctx, c.MetricsAddr)
	}
	return a, nil
}

// serveMetrics exposes the client collectors until the App is closed.
func (a *App) serveMetrics(ctx context.Context, addr string) {
	srv := metrics.NewServer(addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(ctx, "metrics server stopped", "addr", addr, "error", err)
		}
	}()
	a.closers = append(a.closers, func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	a.logger.Info(ctx, "serving metrics", "addr", addr)
}

// Run restores a stored session, if any, and blocks in the REPL until the
// user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close()
	defer a.authService.Close(ctx)

	a.logger.Info(ctx, "Starting forum CLI", "base_url", a.config.BaseURL, "store", a.config.StoreKind)
	fmt.Fprintln(a.out, "Welcome to the forum CLI (type 'help' for commands)")

	if s, err := a.authService.Whoami(ctx); err == nil {
		a.session = s
		fmt.Fprintf(a.out, "Resumed session of %s\n", a.displayName())
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) displayName() string {
	if a.session == nil {
		return ""
	}
	if a.session.Username != "" {
		return a.session.Username
	}
	return fmt.Sprintf("user #%d", a.session.UserID)
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.displayName())
}

// onError reports a failed command. When the session could not be refreshed
// the user is logged out locally and sent to the login prompt.
func (a *App) onError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	if errors.Is(err, client.ErrLoginRequired) {
		a.session = nil
		fmt.Fprintln(a.out, "Your session has expired, please log in again.")
		a.logger.Info(ctx, "session expired, redirecting to login", "route", loginRoute(err))
		if lerr := a.Login(ctx); lerr != nil {
			fmt.Fprintln(a.out, "Login failed:", lerr)
		}
		return
	}

	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable:", err)
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintln(a.out, "Not found.")
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(a.out, "Not allowed:", err)
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}

func loginRoute(err error) string {
	var lerr *client.LoginRequiredError
	if errors.As(err, &lerr) {
		return lerr.Route
	}
	return ""
}

// printJSON writes raw indented, or a short notice when the body is empty.
func (a *App) printJSON(raw json.RawMessage) {
	if len(raw) == 0 {
		fmt.Fprintln(a.out, "OK")
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Fprintln(a.out, string(raw))
		return
	}
	fmt.Fprintln(a.out, buf.String())
}
