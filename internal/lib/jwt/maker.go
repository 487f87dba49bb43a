// Package jwt реализует выпуск и проверку JWT токенов доступа.
//
// Токен несёт только идентификатор учётной записи и сроки действия:
// никакого изменяемого состояния (роль, статус членства) в токене нет,
// оно всегда перечитывается из хранилища при проверке запроса.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и разбора токенов доступа.
type Maker interface {
	// GenerateToken выпускает подписанный токен для учётной записи.
	GenerateToken(accountID int64) (string, error)
	// ParseToken проверяет подпись и срок действия токена и возвращает claims.
	ParseToken(tokenStr string) (*AccountClaims, error)
}

// MakerImpl реализует интерфейс Maker на основе секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl с секретным ключом и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
