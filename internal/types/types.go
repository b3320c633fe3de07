package types

import "strings"

// ColumnDescriptor is one column as reported by the catalog.
type ColumnDescriptor struct {
	Name         string `json:"name"`
	DeclaredType string `json:"declared_type"`
	NativeType   string `json:"native_type,omitempty"`
}

// TableSchema is the introspected shape of a table. PrimaryKeyColumn is empty
// when no primary key constraint was found.
type TableSchema struct {
	TableName        string             `json:"table_name"`
	PrimaryKeyColumn string             `json:"primary_key,omitempty"`
	KeyColumns       []string           `json:"key_columns,omitempty"`
	Columns          []ColumnDescriptor `json:"columns"`
}

func (s TableSchema) HasPrimaryKey() bool {
	return s.PrimaryKeyColumn != ""
}

// CompositeKey reports whether the primary key constraint spans more than one column.
func (s TableSchema) CompositeKey() bool {
	return len(s.KeyColumns) > 1
}

// Column looks a column up by name. Catalog names are matched exactly first,
// then case-insensitively.
func (s TableSchema) Column(name string) (ColumnDescriptor, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	for _, col := range s.Columns {
		if strings.EqualFold(col.Name, name) {
			return col, true
		}
	}
	return ColumnDescriptor{}, false
}

// EditableColumns returns every column except the primary key, in catalog order.
func (s TableSchema) EditableColumns() []ColumnDescriptor {
	cols := make([]ColumnDescriptor, 0, len(s.Columns))
	for _, col := range s.Columns {
		if s.HasPrimaryKey() && strings.EqualFold(col.Name, s.PrimaryKeyColumn) {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

// RowSnapshot maps column names to the values of one previously fetched row.
type RowSnapshot map[string]any

// Get returns the value for column, falling back to a case-insensitive match.
func (r RowSnapshot) Get(column string) (any, bool) {
	if v, ok := r[column]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, column) {
			return v, true
		}
	}
	return nil, false
}

// EditRequest is a single submitted row edit.
type EditRequest struct {
	TableName        string
	PrimaryKeyColumn string
	PrimaryKeyValue  any
	Values           map[string]any
}
