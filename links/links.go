// Package links records paste links generated in each channel.
package links

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Link is a paste link generated in a channel.
type Link struct {
	// Channel is the channel where the link was generated.
	Channel string `json:"channel"`
	// URL is the paste URL.
	URL string `json:"url"`
	// User is the login of the user whose code was pasted.
	User string `json:"user"`
	// Time is the time the link was generated.
	Time time.Time `json:"time"`
	// Expires is the time the paste expires.
	Expires time.Time `json:"expires"`
}

// ErrNoLinks is returned by Last when a channel has no unexpired links.
var ErrNoLinks = errors.New("no links")

// History is a link history backed by an SQLite database.
type History struct {
	db *sqlitex.Pool
}

//go:embed schema.sql
var schemaSQL string

// Init initializes the link history schema in an SQLite database.
// For convenience, it accepts either a single connection or a pool.
func Init[DB *sqlite.Conn | *sqlitex.Pool](ctx context.Context, db DB) error {
	var conn *sqlite.Conn
	switch db := any(db).(type) {
	case *sqlite.Conn:
		conn = db
	case *sqlitex.Pool:
		var err error
		conn, err = db.Take(ctx)
		if err != nil {
			return fmt.Errorf("couldn't get connection from pool: %w", err)
		}
		defer db.Put(conn)
	}
	if err := sqlitex.ExecuteScript(conn, schemaSQL, nil); err != nil {
		return fmt.Errorf("couldn't initialize link history schema: %w", err)
	}
	return nil
}

// Open opens a link history in an SQL database initialized with Init.
func Open(ctx context.Context, db *sqlitex.Pool) (*History, error) {
	return &History{db: db}, nil
}

// Record adds a link to the history.
func (h *History) Record(ctx context.Context, l Link) error {
	conn, err := h.db.Take(ctx)
	if err != nil {
		return fmt.Errorf("couldn't get connection to record link: %w", err)
	}
	defer h.db.Put(conn)
	opts := sqlitex.ExecOptions{
		Args: []any{l.Channel, l.URL, l.User, l.Time.UnixNano(), l.Expires.UnixNano()},
	}
	const insert = `INSERT INTO links (channel, url, user, time, expires) VALUES (?, ?, ?, ?, ?)`
	if err := sqlitex.Execute(conn, insert, &opts); err != nil {
		return fmt.Errorf("couldn't record link: %w", err)
	}
	return nil
}

// Last returns the most recent link in a channel which has not expired as of
// now. If there is none, the error is ErrNoLinks.
func (h *History) Last(ctx context.Context, channel string, now time.Time) (Link, error) {
	r, err := h.Recent(ctx, channel, now, 1)
	if err != nil {
		return Link{}, err
	}
	if len(r) == 0 {
		return Link{}, ErrNoLinks
	}
	return r[0], nil
}

// Recent returns up to n unexpired links in a channel, newest first.
func (h *History) Recent(ctx context.Context, channel string, now time.Time, n int) ([]Link, error) {
	conn, err := h.db.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("couldn't get connection to find links: %w", err)
	}
	defer h.db.Put(conn)
	var r []Link
	opts := sqlitex.ExecOptions{
		Args: []any{channel, now.UnixNano(), n},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			r = append(r, Link{
				Channel: channel,
				URL:     stmt.ColumnText(0),
				User:    stmt.ColumnText(1),
				Time:    time.Unix(0, stmt.ColumnInt64(2)),
				Expires: time.Unix(0, stmt.ColumnInt64(3)),
			})
			return nil
		},
	}
	const sel = `SELECT url, user, time, expires FROM links WHERE channel = ? AND expires > ? ORDER BY time DESC, rowid DESC LIMIT ?`
	if err := sqlitex.Execute(conn, sel, &opts); err != nil {
		return nil, fmt.Errorf("couldn't find links: %w", err)
	}
	return r, nil
}

// Prune deletes links which have expired as of now and returns the number
// deleted.
func (h *History) Prune(ctx context.Context, now time.Time) (int, error) {
	conn, err := h.db.Take(ctx)
	if err != nil {
		return 0, fmt.Errorf("couldn't get connection to prune links: %w", err)
	}
	defer h.db.Put(conn)
	opts := sqlitex.ExecOptions{Args: []any{now.UnixNano()}}
	if err := sqlitex.Execute(conn, `DELETE FROM links WHERE expires <= ?`, &opts); err != nil {
		return 0, fmt.Errorf("couldn't prune links: %w", err)
	}
	return conn.Changes(), nil
}
