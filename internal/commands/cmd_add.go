package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todo/internal/printer"
	"github.com/colonyops/todo/internal/todoapp"
)

type AddCmd struct {
	flags *Flags
	app   *todoapp.App
}

// NewAddCmd creates a new add command.
func NewAddCmd(flags *Flags, app *todoapp.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application.
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a new item",
		UsageText: "todo add <name> <due> [priority]",
		Description: `Adds an item due on the given date (YYYY-MM-DD or "today").

Names are unique; adding a name that already exists fails and leaves the
list unchanged. Priority is free text and stored lowercased.

Examples:
  todo add "pay rent" 2024-07-01 high
  todo add groceries today`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 || c.NArg() > 3 {
		return fmt.Errorf("usage: todo add <name> <due> [priority]")
	}

	name := c.Args().Get(0)
	item, err := cmd.app.Todos.Add(ctx, name, c.Args().Get(1), c.Args().Get(2))
	if err != nil {
		return describe(err, "add item", name)
	}

	printer.Ctx(ctx).Successf("Added %q due %s", item.Name, item.Due)
	return nil
}
