package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/Freeeeeet/room_booking/internal/repository/base"
	"go.uber.org/zap"
)

// BookingsTable - имя таблицы бронирований
const BookingsTable = "bookings"

// SchemaManager приводит таблицу bookings к каноничному набору полей.
// Колонки только добавляются: ничего не удаляется, не переименовывается и не переупорядочивается.
type SchemaManager struct {
	base   *base.Repository
	fields []model.Field
	logger *zap.Logger
}

// NewSchemaManager создаёт менеджер схемы для каноничного списка полей
func NewSchemaManager(b *base.Repository, logger *zap.Logger) *SchemaManager {
	return &SchemaManager{base: b, fields: model.Fields, logger: logger}
}

// Ensure создаёт таблицу, если её нет, и добавляет недостающие колонки.
// Идемпотентна: повторный вызов не меняет ни схему, ни данные.
func (m *SchemaManager) Ensure(ctx context.Context) error {
	return m.base.WithConn(ctx, "ensure schema", func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, m.createTableSQL()); err != nil {
			return fmt.Errorf("create bookings table: %w", err)
		}

		existing, err := m.columns(ctx, db)
		if err != nil {
			return err
		}

		for _, f := range m.fields {
			if existing[f.Name] {
				continue
			}
			query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", BookingsTable, columnDefinition(f))
			if _, err := db.ExecContext(ctx, query); err != nil {
				return fmt.Errorf("add column %s: %w", f.Name, err)
			}
			m.logger.Info("Added missing bookings column",
				zap.String("column", f.Name),
				zap.String("type", f.Type))
		}
		return nil
	})
}

// Columns возвращает текущие колонки таблицы bookings
func (m *SchemaManager) Columns(ctx context.Context) ([]string, error) {
	var names []string
	err := m.base.WithConn(ctx, "list columns", func(db *sql.DB) error {
		var err error
		names, err = m.columnList(ctx, db)
		return err
	})
	return names, err
}

func (m *SchemaManager) createTableSQL() string {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if m.base.Driver() == base.DriverPostgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}

	defs := []string{idColumn}
	for _, f := range m.fields {
		defs = append(defs, columnDefinition(f))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", BookingsTable, strings.Join(defs, ",\n\t"))
}

func (m *SchemaManager) columns(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	names, err := m.columnList(ctx, db)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

func (m *SchemaManager) columnList(ctx context.Context, db *sql.DB) ([]string, error) {
	if m.base.Driver() == base.DriverPostgres {
		return postgresColumns(ctx, db)
	}
	return sqliteColumns(ctx, db)
}

func sqliteColumns(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `PRAGMA table_info(`+BookingsTable+`)`)
	if err != nil {
		return nil, fmt.Errorf("table info: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func postgresColumns(ctx context.Context, db *sql.DB) ([]string, error) {
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position
	`
	rows, err := db.QueryContext(ctx, query, BookingsTable)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// columnDefinition собирает "name TYPE [DEFAULT literal]"
func columnDefinition(f model.Field) string {
	def := f.Name + " " + f.Type
	if f.Default == nil {
		return def
	}
	return def + " DEFAULT " + defaultLiteral(f.Default)
}

// defaultLiteral: числа без кавычек, всё остальное - строка в одинарных кавычках
func defaultLiteral(v any) string {
	switch d := v.(type) {
	case int:
		return strconv.Itoa(d)
	case int64:
		return strconv.FormatInt(d, 10)
	case float64:
		return strconv.FormatFloat(d, 'f', -1, 64)
	case string:
		return "'" + strings.ReplaceAll(d, "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(d), "'", "''") + "'"
	}
}
