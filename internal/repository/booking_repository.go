package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/Freeeeeet/room_booking/internal/repository/base"
)

// BookingRepository хранит бронирования переговорных.
// Вставки только добавляют строки, чтение всегда возвращает всю таблицу.
type BookingRepository struct {
	base *base.Repository
}

func NewBookingRepository(b *base.Repository) *BookingRepository {
	return &BookingRepository{base: b}
}

// Create сохраняет новое бронирование и возвращает присвоенный id
func (r *BookingRepository) Create(ctx context.Context, candidate model.Candidate) (int64, error) {
	names := model.FieldNames()
	placeholders := make([]string, len(names))
	for i := range names {
		placeholders[i] = r.base.Placeholder(i + 1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		BookingsTable, strings.Join(names, ", "), strings.Join(placeholders, ", "),
	)

	values := candidate.Values()
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}

	var id int64
	err := r.base.WithConn(ctx, "create booking", func(db *sql.DB) error {
		if err := db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetAll возвращает снимок всей таблицы в порядке хранения.
// Пустая таблица даёт снимок без строк, но с полным набором колонок.
func (r *BookingRepository) GetAll(ctx context.Context) (*model.Snapshot, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY id", BookingsTable)

	snap := &model.Snapshot{}
	err := r.base.WithConn(ctx, "get bookings", func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("get bookings: %w", err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("get columns: %w", err)
		}
		snap.Columns = columns

		for rows.Next() {
			raw := make([]any, len(columns))
			ptrs := make([]any, len(columns))
			for i := range raw {
				ptrs[i] = &raw[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return fmt.Errorf("scan booking: %w", err)
			}

			row := model.Row{Values: make(map[string]string, len(columns))}
			for i, col := range columns {
				text := stringify(raw[i])
				if col == model.FieldID {
					id, err := strconv.ParseInt(text, 10, 64)
					if err != nil {
						return fmt.Errorf("parse booking id %q: %w", text, err)
					}
					row.ID = id
				}
				row.Values[col] = text
			}
			snap.Rows = append(snap.Rows, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// stringify приводит значение из драйвера к строке, NULL -> ""
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(model.DateTimeLayout)
	default:
		return fmt.Sprint(t)
	}
}
