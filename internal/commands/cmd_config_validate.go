package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todo/internal/printer"
	"github.com/colonyops/todo/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "todo config validate [options]",
				Description: "Validates the configuration file, checking the backend, theme, connection settings and store paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationProblem is one failed field check.
type validationProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.flags.Config == nil {
		return fmt.Errorf("config not loaded")
	}

	problems := collectProblems(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))

	if cmd.format == "json" {
		out := struct {
			Valid  bool                `json:"valid"`
			Errors []validationProblem `json:"errors,omitempty"`
		}{
			Valid:  len(problems) == 0,
			Errors: problems,
		}
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
			return err
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d error(s) found", len(problems))
		}
		return nil
	}

	p := printer.Ctx(ctx)
	for _, prob := range problems {
		p.Errorf("%s: %s", prob.Field, prob.Message)
	}

	if len(problems) == 0 {
		p.Successf("Configuration is valid")
		return nil
	}

	return fmt.Errorf("%d error(s) found", len(problems))
}

func collectProblems(err error) []validationProblem {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationProblem{{Field: "config", Message: err.Error()}}
	}

	problems := make([]validationProblem, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, validationProblem{Field: fe.Field, Message: fe.Err.Error()})
	}
	return problems
}
