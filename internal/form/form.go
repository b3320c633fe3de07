package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
)

var (
	ErrNoData        = errors.New("no data available")
	ErrNoPrimaryKey  = errors.New("no primary key identified")
	ErrUnknownColumn = errors.New("unknown column")
	ErrKeyColumn     = errors.New("primary key column is not editable")
)

// Synthesizer turns a table schema plus one row into an edit form. It keeps
// no state between calls; Now supplies "today" for date defaults.
type Synthesizer struct {
	Now func() time.Time
}

func NewSynthesizer(now func() time.Time) *Synthesizer {
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{Now: now}
}

func (s *Synthesizer) today() time.Time {
	return calendarDate(s.Now())
}

// Form is the set of fields generated for one row.
type Form struct {
	Table      string
	PrimaryKey string
	KeyValue   any
	Fields     []Field
}

// NewField builds the field for col with current as its default source.
func (s *Synthesizer) NewField(col types.ColumnDescriptor, current any) Field {
	switch Classify(col.DeclaredType) {
	case KindDate:
		return DateField{Name: col.Name, Value: dateDefault(current, s.today())}
	case KindNumeric:
		return NumericField{Name: col.Name, Value: numericDefault(current)}
	default:
		return TextField{Name: col.Name, Value: textDefault(current)}
	}
}

// Build generates one field per non-key column of schema, defaulted from row.
// A nil row means the record could not be located and yields ErrNoData.
func (s *Synthesizer) Build(schema types.TableSchema, row types.RowSnapshot) (*Form, error) {
	if !schema.HasPrimaryKey() {
		return nil, fmt.Errorf("%s: %w", schema.TableName, ErrNoPrimaryKey)
	}
	if row == nil {
		return nil, ErrNoData
	}

	keyValue, _ := row.Get(schema.PrimaryKeyColumn)
	form := &Form{
		Table:      schema.TableName,
		PrimaryKey: schema.PrimaryKeyColumn,
		KeyValue:   keyValue,
	}

	for _, col := range schema.EditableColumns() {
		current, _ := row.Get(col.Name)
		form.Fields = append(form.Fields, s.NewField(col, current))
	}
	return form, nil
}

// Field returns the field bound to column.
func (f *Form) Field(column string) (Field, bool) {
	for _, field := range f.Fields {
		if strings.EqualFold(field.Column(), column) {
			return field, true
		}
	}
	return nil, false
}

// Collect parses submitted values into an EditRequest. Fields that were not
// submitted keep their default. Submitting the key column or a column the form
// does not know about is an error.
func (f *Form) Collect(submitted map[string]string) (*types.EditRequest, error) {
	for name := range submitted {
		if strings.EqualFold(name, f.PrimaryKey) {
			return nil, fmt.Errorf("%s: %w", name, ErrKeyColumn)
		}
		if _, ok := f.Field(name); !ok {
			return nil, fmt.Errorf("%s: %w", name, ErrUnknownColumn)
		}
	}

	req := &types.EditRequest{
		TableName:        f.Table,
		PrimaryKeyColumn: f.PrimaryKey,
		PrimaryKeyValue:  f.KeyValue,
		Values:           make(map[string]any, len(f.Fields)),
	}

	for _, field := range f.Fields {
		raw, ok := lookup(submitted, field.Column())
		if !ok {
			req.Values[field.Column()] = field.Default()
			continue
		}
		v, err := field.Parse(raw)
		if err != nil {
			return nil, err
		}
		req.Values[field.Column()] = v
	}
	return req, nil
}

func lookup(values map[string]string, column string) (string, bool) {
	if v, ok := values[column]; ok {
		return v, true
	}
	for k, v := range values {
		if strings.EqualFold(k, column) {
			return v, true
		}
	}
	return "", false
}

type fieldView struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// MarshalJSON tags every field with its kind; dates are rendered as YYYY-MM-DD.
func (f *Form) MarshalJSON() ([]byte, error) {
	fields := make([]fieldView, len(f.Fields))
	for i, field := range f.Fields {
		v := field.Default()
		if t, ok := v.(time.Time); ok {
			v = t.Format(dayLayout)
		}
		fields[i] = fieldView{Name: field.Column(), Kind: field.Kind().String(), Value: v}
	}
	return json.Marshal(struct {
		Table      string      `json:"table"`
		PrimaryKey string      `json:"primary_key"`
		KeyValue   any         `json:"key_value"`
		Fields     []fieldView `json:"fields"`
	}{f.Table, f.PrimaryKey, f.KeyValue, fields})
}
