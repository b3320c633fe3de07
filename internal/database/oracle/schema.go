package oracle

import (
	"context"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
)

func (o *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	return o.QueryStrings(ctx, "SELECT table_name FROM user_tables ORDER BY table_name")
}

func (o *Adapter) GetPrimaryKeyColumns(ctx context.Context, tableName string) ([]string, error) {
	return o.QueryStrings(ctx, `
		SELECT a.column_name FROM user_cons_columns a
		JOIN user_constraints c ON a.constraint_name = c.constraint_name
		WHERE c.table_name = :1 AND c.constraint_type = 'P'
		ORDER BY a.position`, tableName)
}

func (o *Adapter) GetTableColumns(ctx context.Context, tableName string) ([]types.ColumnDescriptor, error) {
	return o.QueryColumns(ctx, typeMap, `
		SELECT column_name, data_type FROM user_tab_columns
		WHERE table_name = :1
		ORDER BY column_id`, tableName)
}
