package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Masterminds/squirrel"
	driver "github.com/go-sql-driver/mysql"
)

type Adapter struct {
	common.SQLDB
}

var typeMap = map[string]string{
	"varchar": "VARCHAR", "char": "CHAR",
	"text": "TEXT", "longtext": "TEXT", "mediumtext": "TEXT", "tinytext": "TEXT",
	"int": "INTEGER", "integer": "INTEGER", "bigint": "INTEGER", "smallint": "INTEGER",
	"tinyint": "INTEGER", "mediumint": "INTEGER",
	"decimal": "NUMBER", "numeric": "NUMBER", "float": "NUMBER", "double": "NUMBER",
	"datetime": "TIMESTAMP", "timestamp": "TIMESTAMP", "date": "DATE", "time": "TIME",
	"json": "JSON", "blob": "BLOB", "binary": "BINARY", "varbinary": "VARBINARY",
}

func New() *Adapter {
	return &Adapter{}
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB) *Adapter {
	return &Adapter{SQLDB: common.SQLDB{DB: db}}
}

// toDSN converts a mysql:// URL into the driver's DSN form. Anything else is
// assumed to already be a DSN.
func toDSN(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}
	dsn := strings.TrimPrefix(url, "mysql://")

	atIndex := strings.LastIndex(dsn, "@")
	if atIndex <= 0 {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return dsn
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := remainder[slashIndex+1:]

	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=REQUIRED", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=DISABLED", "tls=false")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
}

// driverConfig parses url into the driver config used by Connect.
func driverConfig(url string) (*driver.Config, error) {
	cfg, err := driver.ParseDSN(toDSN(url))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MySQL DSN: %w", err)
	}
	// DATE/DATETIME columns come back as time.Time rather than raw bytes.
	cfg.ParseTime = true
	// Affected rows count matched rows, so saving an unchanged row reports 1.
	cfg.ClientFoundRows = true
	return cfg, nil
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	cfg, err := driverConfig(url)
	if err != nil {
		return err
	}

	connector, err := driver.NewConnector(cfg)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	m.Configure(sql.OpenDB(connector))
	return nil
}

func (m *Adapter) Provider() string {
	return "mysql"
}

func (m *Adapter) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func (m *Adapter) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
