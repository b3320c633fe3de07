package sqlite

import (
	"context"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
)

func (s *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	return s.QueryStrings(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
}

// GetPrimaryKeyColumns uses the table-valued form of PRAGMA table_info so the
// table name can be bound instead of interpolated.
func (s *Adapter) GetPrimaryKeyColumns(ctx context.Context, tableName string) ([]string, error) {
	return s.QueryStrings(ctx,
		"SELECT name FROM pragma_table_info(?) WHERE pk > 0 ORDER BY pk", tableName)
}

func (s *Adapter) GetTableColumns(ctx context.Context, tableName string) ([]types.ColumnDescriptor, error) {
	return s.QueryColumns(ctx, typeMap,
		"SELECT name, type FROM pragma_table_info(?) ORDER BY cid", tableName)
}
