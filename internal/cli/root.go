package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/api"
	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/mockapi"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/store"
)

type Context struct {
	Store   storage.Provider
	APIURL  string
	Timeout time.Duration
	Out     io.Writer
	In      io.Reader
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

// confirm asks a yes/no question on In and reports whether the answer was yes.
func (c *Context) confirm(question string) (bool, error) {
	c.printf("%s [y/N]: ", question)
	reader := bufio.NewReader(c.in())
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func (c *Context) timeout() time.Duration {
	if c.Timeout <= 0 {
		return constants.DefaultTimeout
	}
	return c.Timeout
}

// InProcess reports whether requests are served by the embedded service
// rather than a remote one.
func (c *Context) InProcess() bool { return c.APIURL == "" }

// Client returns an API client for the remote service, or for an embedded
// service over the loaded storage.
func (c *Context) Client() (*api.Client, error) {
	if !c.InProcess() {
		return api.New(c.APIURL, api.WithTimeout(c.timeout()))
	}
	if c.Store == nil {
		return nil, errors.New("no storage configured")
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	svc := mockapi.NewService(c.Store)
	return api.NewInProcess(mockapi.NewRouter(svc), api.WithTimeout(c.timeout())), nil
}

// Ping checks that a remote API answers its health check. The embedded
// service is always reachable.
func (c *Context) Ping() error {
	if c.InProcess() {
		return nil
	}
	client, err := c.Client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout())
	defer cancel()
	if err := client.Healthy(ctx); err != nil {
		return fmt.Errorf("api at %s is unreachable: %w", c.APIURL, err)
	}
	return nil
}

// Collection returns a collection store bound to Client.
func (c *Context) Collection() (*store.Collection, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	return store.NewCollection(client), nil
}

// PerformAutomaticBackup snapshots file storage and logs, but otherwise ignores, failures.
func (c *Context) PerformAutomaticBackup() {
	if c.Store == nil || !c.InProcess() {
		return
	}
	mgr, err := backup.NewManager(c.Store.GetConfigPath())
	if err != nil {
		logger.Debug("Automatic backup skipped", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// dispatch runs one collection action to completion and reduces its result.
// A failed action is reported with the collection's message.
func dispatch(coll *store.Collection, cmd tea.Cmd) error {
	msg := cmd()
	coll.Apply(msg)
	if err := resultErr(msg); err != nil {
		return fmt.Errorf("%s: %w", coll.Error(), err)
	}
	return nil
}

func resultErr(msg tea.Msg) error {
	switch msg := msg.(type) {
	case store.FetchedMsg:
		return msg.Err
	case store.CreatedMsg:
		return msg.Err
	case store.UpdatedMsg:
		return msg.Err
	case store.ToggledMsg:
		return msg.Err
	case store.RemovedMsg:
		return msg.Err
	}
	return nil
}
