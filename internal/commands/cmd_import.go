package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todo/internal/core/todo"
	"github.com/colonyops/todo/internal/core/validate"
	"github.com/colonyops/todo/internal/printer"
	"github.com/colonyops/todo/internal/todoapp"
	"github.com/colonyops/todo/pkg/iojson"
)

// ImportRow is one entry of an import document.
type ImportRow struct {
	Name     string `json:"name"`
	Due      string `json:"due"`
	Priority string `json:"priority"`
}

type ImportCmd struct {
	flags  *Flags
	app    *todoapp.App
	reader iojson.FileReader[[]ImportRow]
}

// NewImportCmd creates a new import command.
func NewImportCmd(flags *Flags, app *todoapp.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application.
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Add items from a JSON document",
		UsageText: "todo import [--file <path>]",
		Description: `Reads a JSON array of {"name", "due", "priority"} objects and adds each one.

The whole document is checked first; a missing name or a bad date anywhere
aborts the import before anything is added. Rows are then added one by one
and a row whose name already exists is reported while the rest are still
added.

Examples:
  todo import --file items.json
  cat items.json | todo import`,
		Flags:  []cli.Flag{cmd.reader.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	rows, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}

	checks := make([]error, 0, len(rows))
	for i, row := range rows {
		checks = append(checks, validate.ItemFields(fmt.Sprintf("[%d]", i), row.Name, row.Due))
	}
	if err := criterio.ValidateStruct(checks...); err != nil {
		return fmt.Errorf("invalid import: %w", err)
	}

	var failed int
	for i, row := range rows {
		if _, err := cmd.app.Todos.Add(ctx, row.Name, row.Due, row.Priority); err != nil {
			failed++
			log.Debug().Ctx(ctx).Err(err).Int("row", i).Msg("import row failed")
			if errors.Is(err, todo.ErrItemAlreadyExists) {
				p.Warnf("row %d skipped: %s", i+1, describe(err, "add item", row.Name))
				continue
			}
			p.Errorf("row %d: %s", i+1, describe(err, "add item", row.Name))
		}
	}

	added := len(rows) - failed
	if failed > 0 {
		return fmt.Errorf("imported %d of %d item(s); %d failed", added, len(rows), failed)
	}

	p.Successf("Imported %d item(s)", added)
	return nil
}
