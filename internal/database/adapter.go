package database

import (
	"context"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
	"github.com/Masterminds/squirrel"
)

// Executor runs SQL text with bound parameters. Non-read statements commit
// immediately; there is no transaction handling above a single statement.
type Executor interface {
	Query(ctx context.Context, query string, args ...any) (*common.QueryResult, error)
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	ExecuteScript(ctx context.Context, script string) error
}

// MetadataProvider answers catalog questions about the live schema.
type MetadataProvider interface {
	GetAllTableNames(ctx context.Context) ([]string, error)
	// GetPrimaryKeyColumns returns the primary key constraint columns ordered by key position.
	GetPrimaryKeyColumns(ctx context.Context, tableName string) ([]string, error)
	GetTableColumns(ctx context.Context, tableName string) ([]types.ColumnDescriptor, error)
}

// Dialect covers the per-provider statement details.
type Dialect interface {
	Provider() string
	Placeholder() squirrel.PlaceholderFormat
	QuoteIdentifier(name string) string
}

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	Executor
	MetadataProvider
	Dialect
}
