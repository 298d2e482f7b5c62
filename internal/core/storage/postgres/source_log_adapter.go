package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/aevon-lab/login-usage/internal/core/storage"
	"github.com/aevon-lab/login-usage/internal/core/usage"
	sq "github.com/Masterminds/squirrel"
)

// DefaultSourceTable is the conventional name of the source log table.
const DefaultSourceTable = "sys_log"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SourceLogAdapter implements storage.SourceLog on a PostgreSQL log table with
// columns (id BIGSERIAL, created TIMESTAMPTZ, "user" TEXT, message TEXT).
// The table is owned by another system; it is never written to.
type SourceLogAdapter struct {
	db      *sql.DB
	table   string
	builder sq.StatementBuilderType
}

// NewSourceLogAdapter creates a source log reader for table (optionally schema-qualified).
func NewSourceLogAdapter(db *sql.DB, table string) (*SourceLogAdapter, error) {
	if table == "" {
		table = DefaultSourceTable
	}
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid source table name %q", table)
	}
	return &SourceLogAdapter{
		db:      db,
		table:   table,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

// loginQuery builds the extraction query. Insertion order descending is id DESC.
func (a *SourceLogAdapter) loginQuery(filter storage.LoginFilter) (string, []interface{}, error) {
	query := a.builder.
		Select("created", `"user"`).
		From(a.table).
		Where(sq.GtOrEq{"created": filter.From.UTC()}).
		Where(sq.Lt{"created": filter.To.UTC()})

	if filter.Pattern != "" {
		query = query.Where(sq.Expr("message ~ ?", filter.Pattern))
	}
	if filter.ExcludedUser != "" {
		query = query.Where(sq.NotEq{`"user"`: filter.ExcludedUser})
	}

	return query.OrderBy("id DESC").ToSql()
}

// FindLogins returns matching (user, created) pairs, most recently inserted first.
func (a *SourceLogAdapter) FindLogins(ctx context.Context, filter storage.LoginFilter) ([]usage.LoginEntry, error) {
	query, args, err := a.loginQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build source log query: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query source log: %w", err)
	}
	defer rows.Close()

	var entries []usage.LoginEntry
	for rows.Next() {
		var entry usage.LoginEntry
		if err := rows.Scan(&entry.Timestamp, &entry.User); err != nil {
			return nil, fmt.Errorf("failed to scan source log row: %w", err)
		}
		entry.Timestamp = entry.Timestamp.UTC()
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source log: %w", err)
	}

	slog.Debug("[Postgres] Extracted login rows",
		"table", a.table,
		"from", filter.From,
		"to", filter.To,
		"count", len(entries))
	return entries, nil
}
