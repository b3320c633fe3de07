package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
)

// ErrUnknownTable is returned when a table name is not in the catalog's table list.
var ErrUnknownTable = errors.New("unknown table")

// Introspector reads table shapes from the live catalog. Lookup failures are
// logged and degrade to "no primary key" / "no columns" so callers can disable
// editing instead of failing the whole page.
type Introspector struct {
	meta database.MetadataProvider
	log  *slog.Logger
}

func NewIntrospector(meta database.MetadataProvider, log *slog.Logger) *Introspector {
	if log == nil {
		log = slog.Default()
	}
	return &Introspector{meta: meta, log: log.With("component", "introspector")}
}

// GetPrimaryKey returns the first column of the table's primary key constraint.
// Composite keys are reduced to their first column.
func (i *Introspector) GetPrimaryKey(ctx context.Context, tableName string) (string, bool) {
	pk, _ := i.primaryKey(ctx, tableName)
	return pk, pk != ""
}

func (i *Introspector) primaryKey(ctx context.Context, tableName string) (string, []string) {
	cols, err := i.meta.GetPrimaryKeyColumns(ctx, tableName)
	if err != nil {
		i.log.Warn("primary key lookup failed", "table", tableName, "error", err)
		return "", nil
	}
	if len(cols) == 0 {
		return "", nil
	}
	if len(cols) > 1 {
		i.log.Warn("composite primary key, only the first column is used",
			"table", tableName, "columns", strings.Join(cols, ","), "using", cols[0])
	}
	return cols[0], cols
}

// GetColumns returns the table's columns in catalog order, or nil when the
// lookup fails or the table has no columns.
func (i *Introspector) GetColumns(ctx context.Context, tableName string) []types.ColumnDescriptor {
	cols, err := i.meta.GetTableColumns(ctx, tableName)
	if err != nil {
		i.log.Warn("column lookup failed", "table", tableName, "error", err)
		return nil
	}
	return cols
}

// Describe builds the full TableSchema. It issues one key query and one column query.
func (i *Introspector) Describe(ctx context.Context, tableName string) types.TableSchema {
	pk, keyCols := i.primaryKey(ctx, tableName)
	return types.TableSchema{
		TableName:        tableName,
		PrimaryKeyColumn: pk,
		KeyColumns:       keyCols,
		Columns:          i.GetColumns(ctx, tableName),
	}
}

// ListTables returns the user tables visible to the connection.
func (i *Introspector) ListTables(ctx context.Context) ([]string, error) {
	tables, err := i.meta.GetAllTableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// ResolveTable checks tableName against the catalog's table list and returns
// the catalog spelling. Only resolved names may be interpolated into SQL text.
func (i *Introspector) ResolveTable(ctx context.Context, tableName string) (string, error) {
	if err := common.ValidateIdentifier(tableName); err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, tableName)
	}
	tables, err := i.ListTables(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range tables {
		if t == tableName {
			return t, nil
		}
	}
	for _, t := range tables {
		if strings.EqualFold(t, tableName) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTable, tableName)
}
