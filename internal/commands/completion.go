package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todo/internal/todoapp"
)

// ItemNameCompleter returns a ShellCompleteFunc that suggests item names as
// positional completions. With activeOnly set, completed items are skipped.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func ItemNameCompleter(app *todoapp.App, activeOnly bool) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app == nil || app.Todos == nil {
			return
		}

		items, err := app.Todos.List(ctx, "")
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, item := range items {
			if activeOnly && item.IsComplete() {
				continue
			}
			_, _ = fmt.Fprintln(w, item.Name)
		}
	}
}
