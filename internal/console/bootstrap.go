package console

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed bootstrap/*.sql
var bootstrapScripts embed.FS

var ErrAlreadyInitialized = errors.New("demo schema already present")

// BootstrapScript returns the demo schema for provider.
func BootstrapScript(provider string) (string, error) {
	var name string
	switch provider {
	case "sqlite", "sqlite3":
		name = "sqlite"
	case "postgres", "postgresql":
		name = "postgres"
	default:
		return "", fmt.Errorf("no demo schema for provider %s", provider)
	}
	data, err := bootstrapScripts.ReadFile("bootstrap/" + name + ".sql")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Bootstrap creates and seeds the transport demo schema.
func (s *Service) Bootstrap(ctx context.Context) error {
	script, err := BootstrapScript(s.store.Provider())
	if err != nil {
		return err
	}

	tables, err := s.ListTables(ctx)
	if err != nil {
		return err
	}
	for _, t := range tables {
		if strings.EqualFold(t, "VEHICUL") {
			return ErrAlreadyInitialized
		}
	}

	if err := s.store.ExecuteScript(ctx, script); err != nil {
		return fmt.Errorf("failed to create demo schema: %w", err)
	}
	s.log.Info("demo schema created", "provider", s.store.Provider())
	return nil
}
