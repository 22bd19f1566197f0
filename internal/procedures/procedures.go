// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package procedures invokes the backend's named stored procedures. Every
// mutation in the application is one call into this package; PIN checks,
// row updates and audit logging happen inside the procedure.
package procedures

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Arg is one named procedure argument.
type Arg struct {
	Name  string
	Value any
}

// Error is a failure reported by a stored procedure. Its message is the
// backend's text, shown to the operator unchanged.
type Error struct {
	Procedure string
	Code      string
	Message   string
}

func (e *Error) Error() string {
	return e.Message
}

// Querier is the subset of *sql.DB the client needs.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Client issues procedure calls over a database/sql pool.
type Client struct {
	db Querier
}

// NewClient returns a Client using db.
func NewClient(db Querier) *Client {
	return &Client{db: db}
}

// buildCall renders "SELECT name(p_a => $1, p_b => $2)" for args, with an
// optional cast appended to the call.
func buildCall(name, cast string, args []Arg) (string, []any) {
	call, values := callExpr(name, args)
	return "SELECT " + call + cast, values
}

// buildRowsJSON selects the procedure's result set as jsonb: a single row
// is returned as itself and several rows as an array. A json or jsonb
// scalar passes through unchanged, a composite or RETURNS TABLE row
// becomes an object, and an empty set is SQL NULL.
func buildRowsJSON(name string, args []Arg) (string, []any) {
	call, values := callExpr(name, args)
	query := "SELECT CASE WHEN count(*) = 1 THEN (array_agg(to_jsonb(res)))[1] ELSE jsonb_agg(to_jsonb(res)) END FROM " +
		call + " AS res"
	return query, values
}

func callExpr(name string, args []Arg) (string, []any) {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	values := make([]any, len(args))
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s => $%d", a.Name, i+1)
		values[i] = a.Value
	}
	b.WriteByte(')')
	return b.String(), values
}

// Call invokes a procedure and discards its result.
func (c *Client) Call(ctx context.Context, name string, args ...Arg) error {
	var ignored sql.NullString
	query, values := buildCall(name, "::text", args)
	err := c.db.QueryRowContext(ctx, query, values...).Scan(&ignored)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return wrap(name, err)
	}
	slog.Info("procedure called", "procedure", name)
	return nil
}

// CallJSON invokes a procedure and returns its result rows as raw JSON. A
// procedure may return json, jsonb, a composite or a set of rows. An empty
// or NULL result is returned as nil.
func (c *Client) CallJSON(ctx context.Context, name string, args ...Arg) ([]byte, error) {
	var out []byte
	query, values := buildRowsJSON(name, args)
	err := c.db.QueryRowContext(ctx, query, values...).Scan(&out)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(name, err)
	}
	return out, nil
}

// wrap converts a backend exception into *Error carrying its message. Other
// failures (network, context) are wrapped with the procedure name.
func wrap(name string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		slog.Warn("procedure rejected", "procedure", name, "code", pgErr.Code, "message", pgErr.Message)
		return &Error{Procedure: name, Code: pgErr.Code, Message: pgErr.Message}
	}
	slog.Error("procedure call failed", "procedure", name, "error", err)
	return fmt.Errorf("call %s: %w", name, err)
}
