package mysql

import (
	"context"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
)

func (m *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	return m.QueryStrings(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
}

func (m *Adapter) GetPrimaryKeyColumns(ctx context.Context, tableName string) ([]string, error) {
	return m.QueryStrings(ctx, `
		SELECT column_name FROM information_schema.key_column_usage
		WHERE table_schema = DATABASE() AND table_name = ? AND constraint_name = 'PRIMARY'
		ORDER BY ordinal_position`, tableName)
}

func (m *Adapter) GetTableColumns(ctx context.Context, tableName string) ([]types.ColumnDescriptor, error) {
	return m.QueryColumns(ctx, typeMap, `
		SELECT column_name, data_type FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position`, tableName)
}
