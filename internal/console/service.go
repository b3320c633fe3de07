package console

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/config"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/form"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/schema"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/types"
	"github.com/Masterminds/squirrel"
)

// ErrNoData is returned when a row selected for editing or deleting no longer exists.
var ErrNoData = form.ErrNoData

const (
	NoticeEmptyTable = "table is empty"
	NoticeNoKey      = "could not identify the primary key automatically"
)

// Store is everything the console needs from a connected adapter.
type Store interface {
	database.Executor
	database.MetadataProvider
	database.Dialect
}

type Service struct {
	store        Store
	introspector *schema.Introspector
	synth        *form.Synthesizer
	reports      config.Reports
	log          *slog.Logger
}

func NewService(store Store, reports config.Reports, log *slog.Logger, now func() time.Time) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:        store,
		introspector: schema.NewIntrospector(store, log),
		synth:        form.NewSynthesizer(now),
		reports:      reports,
		log:          log.With("component", "console"),
	}
}

// TablePage is one table's contents plus what the console can do with it.
type TablePage struct {
	Table      string                   `json:"table"`
	PrimaryKey string                   `json:"primary_key,omitempty"`
	Columns    []types.ColumnDescriptor `json:"columns"`
	Rows       []map[string]any         `json:"rows"`
	Editable   bool                     `json:"editable"`
	Notice     string                   `json:"notice,omitempty"`
}

func (s *Service) ListTables(ctx context.Context) ([]string, error) {
	return s.introspector.ListTables(ctx)
}

// Describe resolves tableName against the catalog and introspects it.
func (s *Service) Describe(ctx context.Context, tableName string) (types.TableSchema, error) {
	table, err := s.introspector.ResolveTable(ctx, tableName)
	if err != nil {
		return types.TableSchema{}, err
	}
	return s.introspector.Describe(ctx, table), nil
}

// BrowseTable selects every row of tableName.
func (s *Service) BrowseTable(ctx context.Context, tableName string) (*TablePage, error) {
	ts, err := s.Describe(ctx, tableName)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.Select("*").From(s.store.QuoteIdentifier(ts.TableName)).ToSql()
	if err != nil {
		return nil, err
	}
	result, err := s.store.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ts.TableName, err)
	}

	page := &TablePage{
		Table:      ts.TableName,
		PrimaryKey: ts.PrimaryKeyColumn,
		Columns:    ts.Columns,
		Rows:       result.Rows,
		Editable:   ts.HasPrimaryKey(),
	}
	switch {
	case !ts.HasPrimaryKey():
		page.Notice = NoticeNoKey
	case result.Empty():
		page.Notice = NoticeEmptyTable
	}
	return page, nil
}

// fetchRow re-selects one row by key. A missing row yields a nil snapshot.
func (s *Service) fetchRow(ctx context.Context, ts types.TableSchema, key int64) (types.RowSnapshot, error) {
	query, args, err := squirrel.Select("*").
		From(s.store.QuoteIdentifier(ts.TableName)).
		Where(squirrel.Eq{s.store.QuoteIdentifier(ts.PrimaryKeyColumn): key}).
		PlaceholderFormat(s.store.Placeholder()).
		ToSql()
	if err != nil {
		return nil, err
	}

	result, err := s.store.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s row %d: %w", ts.TableName, key, err)
	}
	if result.Empty() {
		return nil, nil
	}
	return types.RowSnapshot(result.Rows[0]), nil
}

func (s *Service) keyedSchema(ctx context.Context, tableName string, id any) (types.TableSchema, int64, error) {
	ts, err := s.Describe(ctx, tableName)
	if err != nil {
		return ts, 0, err
	}
	if !ts.HasPrimaryKey() {
		return ts, 0, fmt.Errorf("%s: %w", ts.TableName, form.ErrNoPrimaryKey)
	}
	key, err := form.CoerceKey(id)
	if err != nil {
		return ts, 0, err
	}
	return ts, key, nil
}

// EditForm builds the edit form for the row whose primary key is id.
func (s *Service) EditForm(ctx context.Context, tableName string, id any) (*form.Form, error) {
	ts, key, err := s.keyedSchema(ctx, tableName, id)
	if err != nil {
		return nil, err
	}
	row, err := s.fetchRow(ctx, ts, key)
	if err != nil {
		return nil, err
	}
	return s.synth.Build(ts, row)
}

// SubmitEdit re-reads the row, applies submitted values over the form
// defaults and writes every editable column back. Last write wins.
func (s *Service) SubmitEdit(ctx context.Context, tableName string, id any, submitted map[string]string) (int64, error) {
	ts, key, err := s.keyedSchema(ctx, tableName, id)
	if err != nil {
		return 0, err
	}
	row, err := s.fetchRow(ctx, ts, key)
	if err != nil {
		return 0, err
	}
	if row == nil {
		s.log.Warn("edit target vanished", "table", ts.TableName, "key", key)
		return 0, ErrNoData
	}

	f, err := s.synth.Build(ts, row)
	if err != nil {
		return 0, err
	}
	req, err := f.Collect(submitted)
	if err != nil {
		return 0, err
	}
	query, args, err := form.BuildUpdate(ts, req, s.store)
	if err != nil {
		return 0, err
	}

	affected, err := s.store.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", ts.TableName, err)
	}

	// The row was just read; some drivers report 0 when nothing changed.
	s.log.Info("row updated", "table", ts.TableName, "key", key, "columns", len(req.Values), "affected", affected)
	return affected, nil
}

// DeleteRow removes the row whose primary key is id.
func (s *Service) DeleteRow(ctx context.Context, tableName string, id any) (int64, error) {
	ts, key, err := s.keyedSchema(ctx, tableName, id)
	if err != nil {
		return 0, err
	}

	query, args, err := squirrel.Delete(s.store.QuoteIdentifier(ts.TableName)).
		Where(squirrel.Eq{s.store.QuoteIdentifier(ts.PrimaryKeyColumn): key}).
		PlaceholderFormat(s.store.Placeholder()).
		ToSql()
	if err != nil {
		return 0, err
	}

	affected, err := s.store.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", ts.TableName, err)
	}
	if affected == 0 {
		return 0, ErrNoData
	}

	s.log.Info("row deleted", "table", ts.TableName, "key", key)
	return affected, nil
}

// rebind rewrites ?-style placeholders into the store's format.
func (s *Service) rebind(query string) (string, error) {
	return s.store.Placeholder().ReplacePlaceholders(query)
}

func (s *Service) query(ctx context.Context, query string, args ...any) (*common.QueryResult, error) {
	q, err := s.rebind(query)
	if err != nil {
		return nil, err
	}
	return s.store.Query(ctx, q, args...)
}

func (s *Service) exec(ctx context.Context, query string, args ...any) (int64, error) {
	q, err := s.rebind(query)
	if err != nil {
		return 0, err
	}
	return s.store.Exec(ctx, q, args...)
}
