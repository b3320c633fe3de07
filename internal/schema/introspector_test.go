package schema

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	tables  []string
	keys    map[string][]string
	columns map[string][]types.ColumnDescriptor
	err     error

	keyCalls    int
	columnCalls int
}

func (f *fakeCatalog) GetAllTableNames(ctx context.Context) ([]string, error) {
	return f.tables, f.err
}

func (f *fakeCatalog) GetPrimaryKeyColumns(ctx context.Context, tableName string) ([]string, error) {
	f.keyCalls++
	return f.keys[tableName], f.err
}

func (f *fakeCatalog) GetTableColumns(ctx context.Context, tableName string) ([]types.ColumnDescriptor, error) {
	f.columnCalls++
	return f.columns[tableName], f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func transportCatalog() *fakeCatalog {
	return &fakeCatalog{
		tables: []string{"CURSA", "MENTENANTA", "VEHICUL", "JURNAL"},
		keys: map[string][]string{
			"VEHICUL":    {"VEHICUL_ID"},
			"MENTENANTA": {"MENTENANTA_ID"},
			"CURSA":      {"CURSA_ID", "VEHICUL_ID"},
		},
		columns: map[string][]types.ColumnDescriptor{
			"VEHICUL": {
				{Name: "VEHICUL_ID", DeclaredType: "NUMBER"},
				{Name: "MARCA", DeclaredType: "VARCHAR2"},
			},
		},
	}
}

func TestIntrospector_GetPrimaryKey(t *testing.T) {
	in := NewIntrospector(transportCatalog(), quietLogger())
	ctx := context.Background()

	tests := []struct {
		table  string
		wantPK string
		wantOK bool
	}{
		{"VEHICUL", "VEHICUL_ID", true},
		{"MENTENANTA", "MENTENANTA_ID", true},
		{"CURSA", "CURSA_ID", true},
		{"JURNAL", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			pk, ok := in.GetPrimaryKey(ctx, tt.table)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPK, pk)
		})
	}
}

func TestIntrospector_DegradesOnError(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("ORA-00942: table or view does not exist")}
	in := NewIntrospector(catalog, quietLogger())
	ctx := context.Background()

	pk, ok := in.GetPrimaryKey(ctx, "VEHICUL")
	assert.False(t, ok)
	assert.Empty(t, pk)
	assert.Nil(t, in.GetColumns(ctx, "VEHICUL"))

	schema := in.Describe(ctx, "VEHICUL")
	assert.False(t, schema.HasPrimaryKey())
	assert.Empty(t, schema.Columns)

	_, err := in.ListTables(ctx)
	assert.Error(t, err)
}

func TestIntrospector_Describe(t *testing.T) {
	catalog := transportCatalog()
	in := NewIntrospector(catalog, quietLogger())

	schema := in.Describe(context.Background(), "VEHICUL")
	assert.Equal(t, "VEHICUL", schema.TableName)
	assert.Equal(t, "VEHICUL_ID", schema.PrimaryKeyColumn)
	assert.False(t, schema.CompositeKey())
	require.Len(t, schema.Columns, 2)
	assert.Equal(t, []types.ColumnDescriptor{{Name: "MARCA", DeclaredType: "VARCHAR2"}}, schema.EditableColumns())

	assert.Equal(t, 1, catalog.keyCalls)
	assert.Equal(t, 1, catalog.columnCalls)

	composite := in.Describe(context.Background(), "CURSA")
	assert.True(t, composite.CompositeKey())
	assert.Equal(t, "CURSA_ID", composite.PrimaryKeyColumn)
	assert.Empty(t, composite.Columns)
}

func TestIntrospector_ResolveTable(t *testing.T) {
	in := NewIntrospector(transportCatalog(), quietLogger())
	ctx := context.Background()

	name, err := in.ResolveTable(ctx, "vehicul")
	require.NoError(t, err)
	assert.Equal(t, "VEHICUL", name)

	_, err = in.ResolveTable(ctx, "VEHICUL; DROP TABLE CURSA")
	assert.ErrorIs(t, err, ErrUnknownTable)

	_, err = in.ResolveTable(ctx, "SOFER")
	assert.ErrorIs(t, err, ErrUnknownTable)
}
