// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// Хеширование выполняется явным вызовом из бизнес-логики (никогда не хуками
// хранилища), bcrypt намеренно медленный, стоимость настраивается конфигом.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost стоимость bcrypt по умолчанию.
const DefaultCost = bcrypt.DefaultCost

// GetHash принимает пароль пользователя и возвращает его bcrypt-хэш
// с указанной стоимостью. При cost вне допустимого диапазона bcrypt
// вернёт ошибку.
func GetHash(password string, cost int) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt-хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
