package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/console"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds how many tables are read at once; the adapters'
// pools are small.
const maxConcurrentReads = 4

// Source is the part of the console an export reads from.
type Source interface {
	ListTables(ctx context.Context) ([]string, error)
	BrowseTable(ctx context.Context, tableName string) (*console.TablePage, error)
}

type Snapshot struct {
	Timestamp string                        `json:"timestamp"`
	Version   string                        `json:"version"`
	Comment   string                        `json:"comment"`
	Tables    map[string]*console.TablePage `json:"tables"`
}

// PerformExport reads tables (every table when empty) and writes them under
// exportPath as json, csv or a sqlite snapshot. It returns the written path.
// A named table that cannot be read fails the export; when exporting every
// table, unreadable ones are logged and skipped.
func PerformExport(ctx context.Context, src Source, exportPath, format string, tables []string, log *slog.Logger) (string, error) {
	if log == nil {
		log = slog.Default()
	}
	named := len(tables) > 0
	if !named {
		all, err := src.ListTables(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get table names: %w", err)
		}
		tables = all
	}
	if len(tables) == 0 {
		return "", console.ErrNoData
	}

	now := time.Now()
	snapshot := Snapshot{
		Timestamp: now.Format("2006-01-02 15:04:05"),
		Version:   "1.0",
		Tables:    make(map[string]*console.TablePage, len(tables)),
		Comment:   "Database export",
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for _, tableName := range tables {
		g.Go(func() error {
			page, err := src.BrowseTable(gctx, tableName)
			if err != nil && named {
				return fmt.Errorf("failed to read %s: %w", tableName, err)
			}
			if err != nil {
				log.Warn("skipping table", "table", tableName, "error", err)
				return nil
			}
			mu.Lock()
			snapshot.Tables[page.Table] = page
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	stamp := now.Format("2006-01-02_15-04-05")
	switch format {
	case "csv":
		return exportToCSV(snapshot, filepath.Join(exportPath, "export_"+stamp+"_csv"))
	case "sqlite":
		return exportToSQLite(ctx, snapshot, filepath.Join(exportPath, "export_"+stamp+".db"))
	case "json", "":
		return exportToJSON(snapshot, filepath.Join(exportPath, "export_"+stamp+".json"))
	default:
		return "", fmt.Errorf("unknown export format %q (want json, csv or sqlite)", format)
	}
}

func exportToJSON(data Snapshot, filePath string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func columnNames(page *console.TablePage) []string {
	names := make([]string, len(page.Columns))
	for i, c := range page.Columns {
		names[i] = c.Name
	}
	return names
}

func exportToCSV(data Snapshot, dirPath string) (string, error) {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create CSV directory: %w", err)
	}

	for tableName, page := range data.Tables {
		if err := writeCSV(filepath.Join(dirPath, tableName+".csv"), page); err != nil {
			return "", fmt.Errorf("failed to write CSV for %s: %w", tableName, err)
		}
	}
	return dirPath, nil
}

func writeCSV(filePath string, page *console.TablePage) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	headers := columnNames(page)
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, row := range page.Rows {
		values := make([]string, len(headers))
		for i, header := range headers {
			values[i] = cellText(row[header])
		}
		if err := writer.Write(values); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(val)
	}
}

// exportToSQLite copies every table into a fresh sqlite file with TEXT columns.
func exportToSQLite(ctx context.Context, data Snapshot, filePath string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create SQLite database: %w", err)
	}
	defer db.Close()

	for tableName, page := range data.Tables {
		columns := columnNames(page)
		if len(columns) == 0 {
			continue
		}

		defs := make([]string, len(columns))
		quoted := make([]string, len(columns))
		for i, col := range columns {
			quoted[i] = quote(col)
			defs[i] = quoted[i] + " TEXT"
		}
		createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quote(tableName), strings.Join(defs, ", "))
		if _, err := db.ExecContext(ctx, createSQL); err != nil {
			return "", fmt.Errorf("failed to create table %s: %w", tableName, err)
		}

		insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			quote(tableName), strings.Join(quoted, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "))
		for _, row := range page.Rows {
			values := make([]any, len(columns))
			for i, col := range columns {
				if v := row[col]; v != nil {
					values[i] = cellText(v)
				}
			}
			if _, err := db.ExecContext(ctx, insertSQL, values...); err != nil {
				return "", fmt.Errorf("failed to insert row into %s: %w", tableName, err)
			}
		}
	}
	return filePath, nil
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
