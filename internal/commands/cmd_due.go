package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todo/internal/todoapp"
)

type DueCmd struct {
	flags *Flags
	app   *todoapp.App

	all    bool
	asJSON bool
}

// NewDueCmd creates a new due command.
func NewDueCmd(flags *Flags, app *todoapp.App) *DueCmd {
	return &DueCmd{flags: flags, app: app}
}

// Register adds the due command to the application.
func (cmd *DueCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "due",
		Usage:     "List items due on or before a date",
		UsageText: "todo due [--all] [--json] <date|today>",
		Description: `Lists active items due on or before the date. Use --all to include
completed items.

Examples:
  todo due today
  todo due --all 2024-07-01`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "include completed items",
				Destination: &cmd.all,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DueCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: todo due <date|today>")
	}

	items, err := cmd.app.Todos.Due(ctx, c.Args().Get(0), cmd.all)
	if err != nil {
		return describe(err, "list due items", "")
	}

	return writeItems(c.Root().Writer, items, cmd.app.Todos.Today(), cmd.asJSON)
}
