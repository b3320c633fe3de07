package sqlserver

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Masterminds/squirrel"
	_ "github.com/microsoft/go-mssqldb"
)

type Adapter struct {
	common.SQLDB
}

var typeMap = map[string]string{
	"varchar": "VARCHAR", "nvarchar": "VARCHAR", "char": "CHAR", "nchar": "CHAR",
	"text": "TEXT", "ntext": "TEXT",
	"int": "INTEGER", "bigint": "INTEGER", "smallint": "INTEGER", "tinyint": "INTEGER", "bit": "INTEGER",
	"decimal": "NUMBER", "numeric": "NUMBER", "money": "NUMBER", "float": "NUMBER", "real": "NUMBER",
	"date": "DATE", "datetime": "TIMESTAMP", "datetime2": "TIMESTAMP", "smalldatetime": "TIMESTAMP",
	"datetimeoffset": "TIMESTAMP", "time": "TIME",
	"uniqueidentifier": "UUID",
}

func New() *Adapter {
	return &Adapter{}
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB) *Adapter {
	return &Adapter{SQLDB: common.SQLDB{DB: db}}
}

// Connect accepts sqlserver:// URLs as well as the mssql:// alias.
func (a *Adapter) Connect(ctx context.Context, url string) error {
	if strings.HasPrefix(url, "mssql://") {
		url = "sqlserver://" + strings.TrimPrefix(url, "mssql://")
	}
	db, err := sql.Open("sqlserver", url)
	if err != nil {
		return fmt.Errorf("failed to open SQL Server connection: %w", err)
	}
	a.Configure(db)
	return nil
}

func (a *Adapter) Provider() string {
	return "sqlserver"
}

func (a *Adapter) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.AtP
}

func (a *Adapter) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}
