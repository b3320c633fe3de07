package postgres

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
)

func (p *Adapter) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := p.pool.Query(ctx, query, args...)
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

func (p *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	return p.queryStrings(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
}

func (p *Adapter) GetPrimaryKeyColumns(ctx context.Context, tableName string) ([]string, error) {
	return p.queryStrings(ctx, `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = current_schema() AND tc.table_name = $1 AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position`, tableName)
}

func (p *Adapter) GetTableColumns(ctx context.Context, tableName string) ([]types.ColumnDescriptor, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT column_name, data_type FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
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
			DeclaredType: common.NormalizeType(typeMap, native),
			NativeType:   native,
		})
	}
	return columns, rows.Err()
}
