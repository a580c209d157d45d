package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todo/internal/printer"
	"github.com/colonyops/todo/internal/todoapp"
)

type UpdateCmd struct {
	flags *Flags
	app   *todoapp.App
}

// NewUpdateCmd creates a new update command.
func NewUpdateCmd(flags *Flags, app *todoapp.App) *UpdateCmd {
	return &UpdateCmd{flags: flags, app: app}
}

// Register adds the update command to the application.
func (cmd *UpdateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "update",
		Usage:     "Change an item's due date and priority",
		UsageText: "todo update <name> <due> <priority>",
		Description: `Replaces the due date and priority of an item and marks it active again.

Examples:
  todo update "pay rent" 2024-08-01 high`,
		ShellComplete: ItemNameCompleter(cmd.app, false),
		Action:        cmd.run,
	})

	return app
}

func (cmd *UpdateCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() != 3 {
		return fmt.Errorf("usage: todo update <name> <due> <priority>")
	}

	name := c.Args().Get(0)
	if err := cmd.app.Todos.Update(ctx, name, c.Args().Get(1), c.Args().Get(2)); err != nil {
		return describe(err, "update item", name)
	}

	printer.Ctx(ctx).Successf("Updated %q", name)
	return nil
}
