package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/todo/internal/printer"
	"github.com/colonyops/todo/internal/todoapp"
)

type RemoveCmd struct {
	flags *Flags
	app   *todoapp.App

	yes bool

	// interactive reports whether a confirmation prompt can be shown.
	interactive func() bool
	// confirm asks the user to confirm removing name.
	confirm func(name string) (bool, error)
}

// NewRemoveCmd creates a new remove command.
func NewRemoveCmd(flags *Flags, app *todoapp.App) *RemoveCmd {
	return &RemoveCmd{
		flags:       flags,
		app:         app,
		interactive: stdinIsTerminal,
		confirm:     confirmRemove,
	}
}

// Register adds the remove command to the application.
func (cmd *RemoveCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove an item",
		UsageText: "todo remove [--yes] <name>",
		Description: `Deletes an item. When run from a terminal you are asked to confirm
unless --yes is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		ShellComplete: ItemNameCompleter(cmd.app, false),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RemoveCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: todo remove <name>")
	}

	p := printer.Ctx(ctx)
	name := c.Args().Get(0)

	if !cmd.yes && cmd.interactive() {
		ok, err := cmd.confirm(name)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			p.Infof("Remove cancelled")
			return nil
		}
	}

	if err := cmd.app.Todos.Remove(ctx, name); err != nil {
		return describe(err, "remove item", name)
	}

	p.Successf("Removed %q", name)
	return nil
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func confirmRemove(name string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Remove %q?", name)).
		Description("This cannot be undone.").
		Value(&ok).
		Run()
	return ok, err
}
