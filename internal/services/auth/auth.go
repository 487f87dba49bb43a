// Package auth содержит бизнес-логику регистрации, входа и проверки токенов.
//
// Хэширование пароля выполняется здесь явным вызовом до записи в хранилище
// (hash-then-write): прерванный запрос не оставляет частичного состояния,
// а политика хэширования видна и тестируется отдельно от хранилища.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fitflow/fitflow-api/internal/lib/jwt"
	"github.com/fitflow/fitflow-api/internal/lib/password"
	"github.com/fitflow/fitflow-api/internal/models"
	"github.com/fitflow/fitflow-api/internal/storage/repository"
)

// Доменные ошибки аутентификации. Неизвестный email, неверный пароль и
// выключенная учётная запись дают один и тот же ErrInvalidCredentials,
// чтобы не допустить перебор зарегистрированных адресов.
var (
	// ErrDuplicateEmail email уже зарегистрирован.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials учётные данные не подходят.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken токен не прошёл проверку или учётная запись недоступна.
	ErrInvalidToken = errors.New("invalid token")
)

// AccountRepository описывает контракт для работы с учётными записями в базе данных.
type AccountRepository interface {
	// CreateAccount сохраняет новую учётную запись и возвращает её ID.
	CreateAccount(ctx context.Context, account models.Account) (int64, error)

	// GetAccountByEmail возвращает учётную запись по email (без учёта регистра).
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetAccountByID возвращает учётную запись по ID.
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)

	// UpdateAccountProfile обновляет имя, фамилию и телефон.
	UpdateAccountProfile(ctx context.Context, id int64, firstName, lastName string, phone *string) error

	// UpdateAccountPassword заменяет хэш пароля.
	UpdateAccountPassword(ctx context.Context, id int64, passwordHash string) error

	// DeactivateAccount выключает учётную запись.
	DeactivateAccount(ctx context.Context, id int64) error
}

// RegisterInput входные данные регистрации; пароль ещё в открытом виде.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

// Service отвечает за регистрацию, вход и валидацию JWT.
type Service struct {
	accounts AccountRepository
	jwtMaker jwt.Maker
	hashCost int
}

// New создает новый экземпляр Service.
func New(accounts AccountRepository, jwtMaker jwt.Maker, hashCost int) *Service {
	return &Service{
		accounts: accounts,
		jwtMaker: jwtMaker,
		hashCost: hashCost,
	}
}

// Register создает новую учётную запись с ролью member и сразу выпускает токен.
// Повторная регистрация email (в любом регистре) возвращает ErrDuplicateEmail,
// гонка одновременных регистраций разрешается уникальным индексом в базе.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Account, string, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(in.Password, s.hashCost)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	account := models.Account{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hashed,
		Role:         models.RoleMember,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		IsActive:     true,
	}
	id, err := s.accounts.CreateAccount(ctx, account)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.accounts.GetAccountByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(id)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return created, token, nil
}

// Login проверяет учётные данные и выпускает токен доступа.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.Account, string, error) {
	const op = "auth.Login"

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if !account.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if err := password.CompareHash(account.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return account, token, nil
}

// VerifyToken проверяет токен и заново читает учётную запись из хранилища:
// в токене нет изменяемого состояния, поэтому деактивация учётной записи
// действует немедленно, не дожидаясь истечения TTL.
func (s *Service) VerifyToken(ctx context.Context, token string) (*models.Account, error) {
	const op = "auth.VerifyToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	account, err := s.accounts.GetAccountByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !account.IsActive {
		return nil, ErrInvalidToken
	}
	return account, nil
}

// Logout не делает ничего: токены stateless, сервер их не хранит и не
// отзывает. Клиент сам удаляет токен. Claim jti оставлен как точка
// расширения для списка отозванных токенов.
func (s *Service) Logout(_ context.Context, _ string) error {
	return nil
}

// ChangePassword меняет пароль после проверки текущего.
func (s *Service) ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword string) error {
	const op = "auth.ChangePassword"

	account, err := s.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(account.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := password.GetHash(newPassword, s.hashCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.accounts.UpdateAccountPassword(ctx, accountID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProfile обновляет профиль и возвращает свежую учётную запись.
func (s *Service) UpdateProfile(ctx context.Context, accountID int64, firstName, lastName string, phone *string) (*models.Account, error) {
	const op = "auth.UpdateProfile"

	if err := s.accounts.UpdateAccountProfile(ctx, accountID, firstName, lastName, phone); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	account, err := s.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

// Deactivate выключает учётную запись. Физическое удаление не поддерживается,
// выпущенные токены перестают проходить VerifyToken немедленно.
func (s *Service) Deactivate(ctx context.Context, accountID int64) error {
	const op = "auth.Deactivate"
	if err := s.accounts.DeactivateAccount(ctx, accountID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
