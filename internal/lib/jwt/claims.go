package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccountClaims описывает данные, хранящиеся в токене доступа.
// Поле ID (jti) заполняется уникальным значением и оставлено как точка
// расширения для списка отозванных токенов.
type AccountClaims struct {
	AccountID            int64 `json:"account_id"` // Идентификатор учётной записи
	jwt.RegisteredClaims       // Стандартные claims (ExpiresAt, IssuedAt, ID и пр.)
}

// GenerateToken выпускает токен HS256 для указанной учётной записи,
// подписывая его секретным ключом. Срок действия определяется tokenTTL.
func (j *MakerImpl) GenerateToken(accountID int64) (string, error) {
	const op = "jwt.GenerateToken"
	now := time.Now()
	claims := AccountClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken разбирает токен, проверяет подпись и срок действия
// и возвращает AccountClaims, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*AccountClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &AccountClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*AccountClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
