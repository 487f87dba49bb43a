// Package models содержит доменные модели системы: учётные записи,
// тарифы и периоды членства. Структуры используются в бизнес-логике
// и при работе с хранилищем.
package models

import "time"

// Роли учётных записей.
const (
	RoleMember       = "member"
	RoleTrainer      = "trainer"
	RoleReceptionist = "receptionist"
	RoleAdmin        = "admin"
)

// Account представляет зарегистрированную учётную запись.
// Учётные записи никогда не удаляются физически — только деактивируются
// через поле IsActive.
type Account struct {
	ID           int64      // Уникальный идентификатор
	Email        string     // Электронная почта (уникальная, сравнение без учёта регистра)
	PasswordHash string     // Bcrypt-хэш пароля
	Role         string     // Роль: member, trainer, receptionist или admin
	FirstName    string     // Имя
	LastName     string     // Фамилия
	Phone        *string    // Телефон (опционально)
	IsActive     bool       // Признак активности учётной записи
	CreatedAt    time.Time  // Дата создания
}

// AccountView — безопасное представление учётной записи для JSON-ответов,
// без хэша пароля.
type AccountView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// View возвращает представление учётной записи без секретных полей.
func (a *Account) View() *AccountView {
	return &AccountView{
		ID:        a.ID,
		Email:     a.Email,
		Role:      a.Role,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// FullName возвращает полное имя владельца учётной записи.
func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}
