package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todo/internal/commands"
	"github.com/colonyops/todo/internal/core/config"
	"github.com/colonyops/todo/internal/core/logging"
	"github.com/colonyops/todo/internal/core/styles"
	"github.com/colonyops/todo/internal/printer"
	"github.com/colonyops/todo/internal/todoapp"
	"github.com/colonyops/todo/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := printer.NewContext(context.Background(), printer.New(os.Stdout))

	app := newRootCmd(&commands.Flags{}, &todoapp.App{})

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

// newRootCmd builds the command tree. todoApp is populated in the Before
// hook; commands already hold the pointer.
func newRootCmd(flags *commands.Flags, todoApp *todoapp.App) *cli.Command {
	var logCloser func()

	app := &cli.Command{
		Name:      "todo",
		Usage:     "Track personal to-do items",
		UsageText: "todo [global options] command [command options]",
		Description: `todo keeps a list of named items with a due date and a priority.

Items are stored in a SQLite database by default. Set "backend: csv" in the
config file, or pass --backend csv, to keep them in a plain CSV file instead.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TODO_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/todo.log)",
				Sources:     cli.EnvVars("TODO_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TODO_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TODO_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "backend",
				Aliases:     []string{"b"},
				Usage:       "storage backend (sqlite, csv); overrides the config file",
				Sources:     cli.EnvVars("TODO_BACKEND"),
				Destination: &flags.Backend,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/todo.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "todo.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			// config commands inspect the configuration without opening a store,
			// so problems are reported by the command instead of failing here.
			if c.Args().First() == "config" {
				cfg, err := config.Read(flags.ConfigPath, flags.DataDir)
				if err != nil {
					return ctx, fmt.Errorf("load config: %w", err)
				}
				if flags.Backend != "" {
					cfg.Backend = config.Backend(strings.ToLower(strings.TrimSpace(flags.Backend)))
				}
				flags.Config = cfg
				return logging.WithCommand(ctx, "config"), nil
			}

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if flags.Backend != "" {
				if err := cfg.SetBackend(flags.Backend); err != nil {
					return ctx, err
				}
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetTheme(cfg.Theme)
			styles.SetTheme(palette)

			store, err := todoapp.OpenStore(cfg, time.Now)
			if err != nil {
				return ctx, err
			}

			ctx = logging.WithCommand(ctx, c.Args().First())
			ctx = logging.WithBackend(ctx, string(cfg.Backend))

			log.Debug().Ctx(ctx).
				Str("location", cfg.StoreLocation()).
				Msg("store opened")

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*todoApp = *todoapp.NewApp(store, cfg, time.Now, logging.Component("todo-service"))

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close the store
			if err := todoApp.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close store")
				return err
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewAddCmd(flags, todoApp).Register(app)
	app = commands.NewListCmd(flags, todoApp).Register(app)
	app = commands.NewDueCmd(flags, todoApp).Register(app)
	app = commands.NewCompleteCmd(flags, todoApp).Register(app)
	app = commands.NewRemoveCmd(flags, todoApp).Register(app)
	app = commands.NewUpdateCmd(flags, todoApp).Register(app)
	app = commands.NewImportCmd(flags, todoApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	return app
}
