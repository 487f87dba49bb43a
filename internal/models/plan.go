// Package models содержит доменные модели системы.
package models

// UnlimitedClasses значение MaxClasses, означающее отсутствие лимита занятий.
const UnlimitedClasses = -1

// PlanType представляет покупаемый тариф членства.
// После того как на тариф оформлен хотя бы один период членства,
// тариф не изменяется — допускается только деактивация.
type PlanType struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`         // Название тарифа (уникальное)
	Price        float64 `json:"price"`        // Цена за период
	DurationDays int     `json:"durationDays"` // Длительность периода в днях (>= 1)
	MaxClasses   int     `json:"maxClasses"`   // Лимит занятий, -1 — без ограничений
	Description  string  `json:"description"`
	IsActive     bool    `json:"isActive"`
}

// HasUnlimitedClasses сообщает, не ограничен ли тариф по числу занятий.
func (p *PlanType) HasUnlimitedClasses() bool {
	return p.MaxClasses == UnlimitedClasses
}
