package sqlserver

import (
	"context"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
)

func (a *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	return a.QueryStrings(ctx, `
		SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`)
}

func (a *Adapter) GetPrimaryKeyColumns(ctx context.Context, tableName string) ([]string, error) {
	return a.QueryStrings(ctx, `
		SELECT kcu.COLUMN_NAME
		FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
		  ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA
		WHERE tc.TABLE_SCHEMA = SCHEMA_NAME() AND tc.TABLE_NAME = @p1 AND tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
		ORDER BY kcu.ORDINAL_POSITION`, tableName)
}

func (a *Adapter) GetTableColumns(ctx context.Context, tableName string) ([]types.ColumnDescriptor, error) {
	return a.QueryColumns(ctx, typeMap, `
		SELECT COLUMN_NAME, DATA_TYPE FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_NAME = @p1
		ORDER BY ORDINAL_POSITION`, tableName)
}
