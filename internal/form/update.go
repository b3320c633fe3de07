package form

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
	"github.com/Masterminds/squirrel"
)

var (
	ErrInvalidKey      = errors.New("primary key value is not an integer")
	ErrNothingToUpdate = errors.New("no columns to update")
)

// Dialect is the part of a database adapter needed to render statements.
type Dialect interface {
	Placeholder() squirrel.PlaceholderFormat
	QuoteIdentifier(name string) string
}

// BuildUpdate renders req as
//
//	UPDATE <table> SET c1 = ?, c2 = ? ... WHERE <pk> = ?
//
// Columns follow schema order and the integer key is the last argument.
// Every identifier is checked against schema before it is quoted into the text.
func BuildUpdate(schema types.TableSchema, req *types.EditRequest, d Dialect) (string, []any, error) {
	if !schema.HasPrimaryKey() {
		return "", nil, fmt.Errorf("%s: %w", schema.TableName, ErrNoPrimaryKey)
	}
	if !strings.EqualFold(req.TableName, schema.TableName) {
		return "", nil, fmt.Errorf("edit for table %s does not match schema %s", req.TableName, schema.TableName)
	}
	if !strings.EqualFold(req.PrimaryKeyColumn, schema.PrimaryKeyColumn) {
		return "", nil, fmt.Errorf("edit keyed on %s but %s has primary key %s",
			req.PrimaryKeyColumn, schema.TableName, schema.PrimaryKeyColumn)
	}
	if len(req.Values) == 0 {
		return "", nil, ErrNothingToUpdate
	}
	if err := common.ValidateIdentifier(schema.TableName); err != nil {
		return "", nil, err
	}
	if err := common.ValidateIdentifier(schema.PrimaryKeyColumn); err != nil {
		return "", nil, err
	}

	for name := range req.Values {
		if strings.EqualFold(name, schema.PrimaryKeyColumn) {
			return "", nil, fmt.Errorf("%s: %w", name, ErrKeyColumn)
		}
		if _, ok := schema.Column(name); !ok {
			return "", nil, fmt.Errorf("%s.%s: %w", schema.TableName, name, ErrUnknownColumn)
		}
		if err := common.ValidateIdentifier(name); err != nil {
			return "", nil, err
		}
	}

	key, err := CoerceKey(req.PrimaryKeyValue)
	if err != nil {
		return "", nil, err
	}

	q := squirrel.Update(d.QuoteIdentifier(schema.TableName)).PlaceholderFormat(d.Placeholder())
	for _, col := range schema.EditableColumns() {
		v, ok := lookupValue(req.Values, col.Name)
		if !ok {
			continue
		}
		q = q.Set(d.QuoteIdentifier(col.Name), v)
	}
	q = q.Where(squirrel.Eq{d.QuoteIdentifier(schema.PrimaryKeyColumn): key})

	return q.ToSql()
}

func lookupValue(values map[string]any, column string) (any, bool) {
	if v, ok := values[column]; ok {
		return v, true
	}
	for k, v := range values {
		if strings.EqualFold(k, column) {
			return v, true
		}
	}
	return nil, false
}

// CoerceKey converts a primary key value to int64. Integral floats and
// numeric strings are accepted.
func CoerceKey(v any) (int64, error) {
	switch k := v.(type) {
	case int:
		return int64(k), nil
	case int8:
		return int64(k), nil
	case int16:
		return int64(k), nil
	case int32:
		return int64(k), nil
	case int64:
		return k, nil
	case uint:
		return int64(k), nil
	case uint8:
		return int64(k), nil
	case uint16:
		return int64(k), nil
	case uint32:
		return int64(k), nil
	case uint64:
		if k > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidKey, k)
		}
		return int64(k), nil
	case float32:
		return CoerceKey(float64(k))
	case float64:
		if k != math.Trunc(k) || math.IsInf(k, 0) || math.IsNaN(k) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidKey, k)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		if k >= math.MaxInt64 || k < math.MinInt64 {
			return 0, fmt.Errorf("%w: %v out of range", ErrInvalidKey, k)
		}
		return int64(k), nil
	case string:
		s := strings.TrimSpace(k)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return CoerceKey(f)
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, k)
	case []byte:
		return CoerceKey(string(k))
	case driver.Valuer:
		inner, err := k.Value()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return CoerceKey(inner)
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidKey, v)
	}
}
