package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todo/internal/todoapp"
)

type ListCmd struct {
	flags *Flags
	app   *todoapp.App

	match  string
	asJSON bool
}

// NewListCmd creates a new list command.
func NewListCmd(flags *Flags, app *todoapp.App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application.
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"all", "ls"},
		Usage:     "List all items",
		UsageText: "todo list [--match <glob>] [--json]",
		Description: `Lists every item in the order it was added, completed items included.

Examples:
  todo list
  todo list --match "work/*"
  todo list --json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "only show items whose name matches the glob",
				Destination: &cmd.match,
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

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	items, err := cmd.app.Todos.List(ctx, cmd.match)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	return writeItems(c.Root().Writer, items, cmd.app.Todos.Today(), cmd.asJSON)
}
