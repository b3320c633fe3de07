package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Masterminds/squirrel"
	go_ora "github.com/sijms/go-ora/v2"
)

type Adapter struct {
	common.SQLDB
}

var typeMap = map[string]string{
	"varchar2": "VARCHAR2", "nvarchar2": "VARCHAR2", "varchar": "VARCHAR2",
	"char": "CHAR", "nchar": "CHAR", "clob": "CLOB", "nclob": "CLOB",
	"number": "NUMBER", "float": "NUMBER", "binary_float": "NUMBER", "binary_double": "NUMBER",
	"integer": "INTEGER", "int": "INTEGER", "smallint": "INTEGER",
	"date": "DATE", "timestamp": "TIMESTAMP",
	"blob": "BLOB", "raw": "RAW",
}

func New() *Adapter {
	return &Adapter{}
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB) *Adapter {
	return &Adapter{SQLDB: common.SQLDB{DB: db}}
}

// BuildURL composes an oracle:// URL from credentials and an EZConnect style
// dsn (host[:port]/service).
func BuildURL(user, password, dsn string) (string, error) {
	hostPort, service, ok := strings.Cut(dsn, "/")
	if !ok || service == "" {
		return "", fmt.Errorf("invalid Oracle DSN %q: expected host[:port]/service", dsn)
	}

	host := hostPort
	port := 1521
	if h, p, found := strings.Cut(hostPort, ":"); found {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", fmt.Errorf("invalid Oracle port %q: %w", p, err)
		}
		host, port = h, n
	}

	return go_ora.BuildUrl(host, port, service, user, password, nil), nil
}

func (o *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("oracle", url)
	if err != nil {
		return fmt.Errorf("failed to open Oracle connection: %w", err)
	}
	o.Configure(db)
	return nil
}

func (o *Adapter) Provider() string {
	return "oracle"
}

func (o *Adapter) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Colon
}

func (o *Adapter) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
