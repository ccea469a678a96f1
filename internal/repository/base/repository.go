package base

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver - тип хранилища бронирований
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ParseDriver разбирает имя драйвера из конфига
func ParseDriver(name string) (Driver, error) {
	switch Driver(name) {
	case DriverSQLite, "sqlite3", "":
		return DriverSQLite, nil
	case DriverPostgres, "pgx", "postgresql":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unknown db driver %q", name)
	}
}

// StorageError - ошибка ввода-вывода хранилища
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError проверяет, что ошибка пришла из хранилища
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// Repository базовый репозиторий. Соединение не держится между вызовами:
// каждая операция открывает и закрывает своё.
type Repository struct {
	driver Driver
	dsn    string
}

// NewRepository создаёт новый базовый репозиторий
func NewRepository(driver Driver, dsn string) (*Repository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("db dsn is required")
	}
	return &Repository{driver: driver, dsn: dsn}, nil
}

// Driver возвращает тип хранилища
func (r *Repository) Driver() Driver {
	return r.driver
}

// GooseDialect возвращает диалект goose для текущего драйвера
func (r *Repository) GooseDialect() string {
	if r.driver == DriverPostgres {
		return "postgres"
	}
	return "sqlite3"
}

func (r *Repository) sqlDriverName() string {
	if r.driver == DriverPostgres {
		return "pgx"
	}
	return "sqlite"
}

// Placeholder возвращает плейсхолдер n-го параметра (с 1)
func (r *Repository) Placeholder(n int) string {
	if r.driver == DriverPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// WithConn открывает соединение, выполняет fn и закрывает соединение на любом пути выхода.
// Ошибки открытия и ошибки fn оборачиваются в StorageError.
func (r *Repository) WithConn(ctx context.Context, op string, fn func(db *sql.DB) error) (err error) {
	db, err := sql.Open(r.sqlDriverName(), r.dsn)
	if err != nil {
		return &StorageError{Op: op, Err: fmt.Errorf("open db: %w", err)}
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = &StorageError{Op: op, Err: fmt.Errorf("close db: %w", cerr)}
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		return &StorageError{Op: op, Err: fmt.Errorf("ping db: %w", err)}
	}

	if err := fn(db); err != nil {
		var se *StorageError
		if errors.As(err, &se) {
			return err
		}
		return &StorageError{Op: op, Err: err}
	}
	return nil
}
