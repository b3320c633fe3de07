package common

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
)

var errNotConnected = fmt.Errorf("database connection not established")

// SQLDB carries the database/sql plumbing shared by the mysql, sqlite,
// oracle and sqlserver adapters.
type SQLDB struct {
	DB *sql.DB
}

// Configure applies the pool limits used by every database/sql adapter.
func (b *SQLDB) Configure(db *sql.DB) {
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)
	b.DB = db
}

func (b *SQLDB) Close() error {
	if b.DB != nil {
		return b.DB.Close()
	}
	return nil
}

func (b *SQLDB) Ping(ctx context.Context) error {
	if b.DB == nil {
		return errNotConnected
	}
	return b.DB.PingContext(ctx)
}

func (b *SQLDB) Query(ctx context.Context, query string, args ...any) (*QueryResult, error) {
	if b.DB == nil {
		return nil, errNotConnected
	}
	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return ScanRows(rows)
}

// Exec runs a single statement outside any explicit transaction and returns
// the affected-row count.
func (b *SQLDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if b.DB == nil {
		return 0, errNotConnected
	}
	res, err := b.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

// ExecuteScript runs each statement of script in order, stopping at the first failure.
func (b *SQLDB) ExecuteScript(ctx context.Context, script string) error {
	if b.DB == nil {
		return errNotConnected
	}
	for i, stmt := range ParseSQLStatements(script) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := b.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement %d: %w", i+1, err)
		}
	}
	return nil
}

// QueryStrings runs a single-column query and collects the values.
func (b *SQLDB) QueryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	if b.DB == nil {
		return nil, errNotConnected
	}
	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// QueryColumns runs a (name, type) catalog query and normalizes the types through typeMap.
func (b *SQLDB) QueryColumns(ctx context.Context, typeMap map[string]string, query string, args ...any) ([]types.ColumnDescriptor, error) {
	if b.DB == nil {
		return nil, errNotConnected
	}
	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := make([]types.ColumnDescriptor, 0)
	for rows.Next() {
		var name, native string
		if err := rows.Scan(&name, &native); err != nil {
			return nil, err
		}
		columns = append(columns, types.ColumnDescriptor{
			Name:         name,
			DeclaredType: NormalizeType(typeMap, native),
			NativeType:   native,
		})
	}
	return columns, rows.Err()
}
