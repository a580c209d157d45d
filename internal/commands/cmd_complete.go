package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todo/internal/printer"
	"github.com/colonyops/todo/internal/todoapp"
)

type CompleteCmd struct {
	flags *Flags
	app   *todoapp.App
}

// NewCompleteCmd creates a new complete command.
func NewCompleteCmd(flags *Flags, app *todoapp.App) *CompleteCmd {
	return &CompleteCmd{flags: flags, app: app}
}

// Register adds the complete command to the application.
func (cmd *CompleteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "complete",
		Aliases:       []string{"done"},
		Usage:         "Mark an item complete",
		UsageText:     "todo complete <name>",
		Description:   "Marks the item complete as of today. Completing a completed item moves its completion date to today.",
		ShellComplete: ItemNameCompleter(cmd.app, true),
		Action:        cmd.run,
	})

	return app
}

func (cmd *CompleteCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: todo complete <name>")
	}

	name := c.Args().Get(0)
	if err := cmd.app.Todos.Complete(ctx, name); err != nil {
		return describe(err, "complete item", name)
	}

	printer.Ctx(ctx).Successf("Completed %q", name)
	return nil
}
