package database

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/oracle"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/sqlite"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/sqlserver"
)

func NewAdapter(provider string) DatabaseAdapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New()
	case "mysql":
		return mysql.New()
	case "sqlite", "sqlite3":
		return sqlite.New()
	case "oracle":
		return oracle.New()
	case "sqlserver", "mssql":
		return sqlserver.New()
	default:
		return postgres.New()
	}
}

// Open creates the adapter for provider, connects and pings it. The returned
// adapter is the process-wide handle; callers pass it down and Close it on exit.
func Open(ctx context.Context, provider, url string) (DatabaseAdapter, error) {
	adapter := NewAdapter(provider)
	if err := adapter.Connect(ctx, url); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", provider, err)
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to reach %s: %w", provider, err)
	}
	return adapter, nil
}
