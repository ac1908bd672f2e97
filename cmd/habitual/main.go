package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string        `help:"Storage location: a SQLite file, a .json file, \":memory:\", or \"postgresql\" with the connection string in the keyring or ${db_env}. Credentials must NOT be embedded in a connection string." default:"${default_config}" env:"HABITUAL_STORAGE"`
	API     string        `name:"api" help:"Base URL of a running habits API. Empty serves requests in-process from --config." env:"HABITUAL_API_URL"`
	Timeout time.Duration `help:"Request timeout." default:"${default_timeout}" env:"HABITUAL_TIMEOUT"`
	Debug   bool          `help:"Enable debug logging to stderr." env:"HABITUAL_DEBUG"`

	Init   cli.InitCmd  `cmd:"" help:"Initialize habitual storage."`
	Tui    cli.TuiCmd   `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve  cli.ServeCmd `cmd:"" help:"Serve the habits REST API over HTTP."`
	Habit  cli.HabitCmd `cmd:"" help:"Manage habits from the command line."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Keyring cli.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// logDir keeps logs next to file storage and in the default config directory otherwise.
func logDir(location string) string {
	if location == cli.PostgresAlias || location == storage.MemoryLocation || storage.IsPostgres(location) {
		return filepath.Dir(utils.ExpandPath(constants.DefaultConfigPath))
	}
	return filepath.Dir(utils.ExpandPath(location))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track habits over the last five days"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":         constants.Version,
			"default_config":  constants.DefaultConfigPath,
			"default_timeout": constants.DefaultTimeout.String(),
			"default_addr":    constants.DefaultAPIAddr,
			"db_env":          constants.EnvDBConnection,
		},
	)

	command := ctx.Command()

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: logDir(CLI.Config),
		Console:   strings.HasPrefix(command, "serve"),
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting", "command", command, "version", constants.Version)

	appCtx := &cli.Context{
		APIURL:  CLI.API,
		Timeout: CLI.Timeout,
	}

	// Keyring commands must work before any PostgreSQL credentials exist.
	if !strings.HasPrefix(command, "keyring") {
		store, err := cli.OpenStorage(CLI.Config)
		if err != nil {
			errors.Fatal(err)
		}
		appCtx.Store = store
	}

	err := ctx.Run(appCtx)
	if appCtx.Store != nil {
		if cerr := appCtx.Store.Close(); cerr != nil {
			logger.Warn("Failed to close storage", "error", cerr)
		}
	}
	if err != nil {
		errors.Fatal(err)
	}
}
