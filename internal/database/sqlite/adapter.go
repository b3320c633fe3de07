package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	common.SQLDB
}

var typeMap = map[string]string{
	"varchar": "VARCHAR", "varchar2": "VARCHAR2", "text": "TEXT", "char": "CHAR", "clob": "TEXT",
	"int": "INTEGER", "integer": "INTEGER", "bigint": "INTEGER", "smallint": "INTEGER", "tinyint": "INTEGER",
	"real": "NUMBER", "double": "NUMBER", "float": "NUMBER", "number": "NUMBER",
	"numeric": "NUMBER", "decimal": "NUMBER",
	"boolean": "INTEGER", "bool": "INTEGER",
	"date": "DATE", "datetime": "TIMESTAMP", "timestamp": "TIMESTAMP",
	"blob": "BLOB",
}

func New() *Adapter {
	return &Adapter{}
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB) *Adapter {
	return &Adapter{SQLDB: common.SQLDB{DB: db}}
}

// Connect opens the database file named by url (sqlite://path or a bare path).
// Foreign key enforcement is switched on so cascading deletes fire.
func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(strings.TrimPrefix(url, "sqlite3://"), "sqlite://")

	if !strings.Contains(dbPath, "?") {
		dbPath += "?_foreign_keys=on&_journal_mode=WAL"
	} else if !strings.Contains(dbPath, "_foreign_keys") && !strings.Contains(dbPath, "_fk") {
		dbPath += "&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	s.Configure(db)
	return nil
}

// ExecuteScript hands the whole script to the driver, which runs every
// statement in turn. Trigger bodies contain semicolons, so splitting is not safe here.
func (s *Adapter) ExecuteScript(ctx context.Context, script string) error {
	if s.DB == nil {
		return fmt.Errorf("database connection not established")
	}
	if _, err := s.DB.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("failed to execute script: %w", err)
	}
	return nil
}

func (s *Adapter) Provider() string {
	return "sqlite"
}

func (s *Adapter) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func (s *Adapter) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
