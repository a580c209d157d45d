package commands

import (
	"fmt"
	"io"

	"github.com/colonyops/todo/internal/core/styles"
	"github.com/colonyops/todo/internal/core/todo"
	"github.com/colonyops/todo/pkg/iojson"
)

// renderItem formats one item as
//
//	Name: <n>, Due: <d>, Priority: <p>, Status: <s>, Completed: <c|None>
//
// Values are styled with the active theme. Active items due before today
// render their due date as overdue.
func renderItem(item todo.Item, today todo.Date) string {
	label := styles.LabelStyle.Render

	due := item.Due.String()
	if !item.IsComplete() && item.Due.Before(today) {
		due = styles.OverdueStyle.Render(due)
	}

	status := styles.ActiveStyle.Render(string(item.Status))
	completed := "None"
	if item.IsComplete() {
		status = styles.CompleteStyle.Render(string(item.Status))
		completed = styles.CompleteStyle.Render(item.Completed.String())
	}

	return fmt.Sprintf("%s %s, %s %s, %s %s, %s %s, %s %s",
		label("Name:"), styles.NameStyle.Render(item.Name),
		label("Due:"), due,
		label("Priority:"), styles.Priority(item.Priority).Render(item.Priority),
		label("Status:"), status,
		label("Completed:"), completed,
	)
}

// writeItems prints items one per line, as JSON lines when asJSON is set.
func writeItems(w io.Writer, items []todo.Item, today todo.Date, asJSON bool) error {
	for _, item := range items {
		if asJSON {
			if err := iojson.WriteLine(w, item); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, renderItem(item, today)); err != nil {
			return err
		}
	}
	return nil
}
