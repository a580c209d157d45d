// Package db owns the SQLite connection, the items schema and the queries
// run against it. Rows are schema records; translating them to domain
// items is the stores package's job.
package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries runs the item statements against a pool or a transaction.
type Queries struct {
	db DBTX
}

// New binds queries to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a copy of q bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// ItemRow mirrors one row of the items table. Dates are YYYY-MM-DD text.
type ItemRow struct {
	ID        string
	Name      string
	Due       string
	Priority  sql.NullString
	Status    string
	Completed sql.NullString
}

const itemColumns = `id, name, due, priority, status, completed`

func scanItem(row interface{ Scan(...any) error }) (ItemRow, error) {
	var i ItemRow
	err := row.Scan(&i.ID, &i.Name, &i.Due, &i.Priority, &i.Status, &i.Completed)
	return i, err
}

// CreateItemParams holds the values for CreateItem.
type CreateItemParams struct {
	ID        string
	Name      string
	Due       string
	Priority  sql.NullString
	Status    string
	Completed sql.NullString
}

const createItem = `INSERT INTO items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateItem(ctx context.Context, arg CreateItemParams) error {
	_, err := q.db.ExecContext(ctx, createItem,
		arg.ID, arg.Name, arg.Due, arg.Priority, arg.Status, arg.Completed,
	)
	return err
}

const getItemByName = `SELECT ` + itemColumns + ` FROM items WHERE name = ? ORDER BY rowid LIMIT 1`

// GetItemByName returns sql.ErrNoRows when no item has the name.
func (q *Queries) GetItemByName(ctx context.Context, name string) (ItemRow, error) {
	return scanItem(q.db.QueryRowContext(ctx, getItemByName, name))
}

const listItems = `SELECT ` + itemColumns + ` FROM items ORDER BY rowid`

func (q *Queries) ListItems(ctx context.Context) ([]ItemRow, error) {
	rows, err := q.db.QueryContext(ctx, listItems)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []ItemRow{}
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItemStateParams holds the values for UpdateItemState.
type UpdateItemStateParams struct {
	ID        string
	Due       string
	Priority  sql.NullString
	Status    string
	Completed sql.NullString
}

const updateItemState = `UPDATE items SET due = ?, priority = ?, status = ?, completed = ? WHERE id = ?`

func (q *Queries) UpdateItemState(ctx context.Context, arg UpdateItemStateParams) error {
	_, err := q.db.ExecContext(ctx, updateItemState,
		arg.Due, arg.Priority, arg.Status, arg.Completed, arg.ID,
	)
	return err
}

const deleteItem = `DELETE FROM items WHERE id = ?`

func (q *Queries) DeleteItem(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteItem, id)
	return err
}

const countItems = `SELECT COUNT(*) FROM items`

func (q *Queries) CountItems(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countItems).Scan(&n)
	return n, err
}
