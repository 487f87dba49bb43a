// Package models содержит доменные модели системы.
package models

import "time"

// Статусы периода членства. Переход active -> expired управляется датой
// и вычисляется лениво при чтении, переход active <-> suspended выполняется
// администратором.
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusSuspended = "suspended"
)

// MembershipPeriod представляет оплаченный период членства,
// привязанный к учётной записи и тарифу. У одной учётной записи
// может быть много периодов (история), но для решения о доступе
// используется только текущий.
type MembershipPeriod struct {
	ID         int64     // Уникальный идентификатор
	AccountID  int64     // Владелец периода
	PlanTypeID int64     // Оформленный тариф
	StartDate  time.Time // Дата начала (включительно)
	EndDate    time.Time // Дата окончания (включительно), EndDate >= StartDate
	Status     string    // Сохранённый статус: active, expired или suspended
}

// MembershipSummary — агрегированное представление периода членства
// для JSON-ответов: тариф, даты и вычисленный эффективный статус.
type MembershipSummary struct {
	ID                int64     `json:"id"`
	PlanType          *PlanType `json:"planType"`
	StartDate         string    `json:"startDate"`
	EndDate           string    `json:"endDate"`
	Status            string    `json:"status"`
	DaysRemaining     int       `json:"daysRemaining"`
	StatusDescription string    `json:"statusDescription"`
}

// ExpiringMembershipInfo содержит данные для письма-напоминания
// об истекающем членстве.
type ExpiringMembershipInfo struct {
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	PlanName  string    `json:"plan_name"`
	EndDate   time.Time `json:"end_date"`
}
