// Package repository реализует хранилище данных на основе PostgreSQL
// для учётных записей, тарифов и периодов членства. Предоставляет методы
// создания, чтения и обновления записей. Пароли приходят сюда уже в виде
// хэшей — хэширование выполняет бизнес-логика.
package repository

import (
	"context"
	"errors"
	"fmt"

	"database/sql"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки хранилища. Бизнес-логика проверяет их через errors.Is
// и преобразует в свои доменные ошибки.
var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate нарушение уникальности (например, повторный email).
	ErrDuplicate = errors.New("duplicate")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с учётными записями, тарифами и членствами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных:
// основные таблицы должны существовать после применения миграций.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'membership_periods'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table membership_periods missing or query error: %w", err)
	}
	return nil
}
