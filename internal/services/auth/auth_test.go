package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitflow/fitflow-api/internal/lib/jwt"
	"github.com/fitflow/fitflow-api/internal/models"
	"github.com/fitflow/fitflow-api/internal/storage/repository"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) CreateAccount(ctx context.Context, account models.Account) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *mockAccountRepository) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *mockAccountRepository) UpdateAccountProfile(ctx context.Context, id int64, firstName, lastName string, phone *string) error {
	args := m.Called(ctx, id, firstName, lastName, phone)
	return args.Error(0)
}

func (m *mockAccountRepository) UpdateAccountPassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockAccountRepository) DeactivateAccount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret-key", time.Hour)
}

func hashOf(t *testing.T, raw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockAccountRepository)
		created := &models.Account{ID: 1, Email: "anna@example.com", Role: models.RoleMember, IsActive: true}
		repo.On("CreateAccount", ctx, mock.MatchedBy(func(a models.Account) bool {
			return a.Email == "anna@example.com" &&
				a.Role == models.RoleMember &&
				a.IsActive &&
				a.PasswordHash != "" &&
				a.PasswordHash != "Passw0rd1"
		})).Return(int64(1), nil)
		repo.On("GetAccountByID", ctx, int64(1)).Return(created, nil)

		svc := New(repo, testMaker(), bcrypt.MinCost)
		account, token, err := svc.Register(ctx, RegisterInput{
			Email:     "  Anna@Example.com ",
			Password:  "Passw0rd1",
			FirstName: "Anna",
			LastName:  "Smith",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), account.ID)
		assert.NotEmpty(t, token)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(mockAccountRepository)
		repo.On("CreateAccount", ctx, mock.Anything).Return(int64(0), repository.ErrDuplicate)

		svc := New(repo, testMaker(), bcrypt.MinCost)
		_, _, err := svc.Register(ctx, RegisterInput{Email: "anna@example.com", Password: "Passw0rd1"})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockAccountRepository)
		account := &models.Account{
			ID:           1,
			Email:        "anna@example.com",
			PasswordHash: hashOf(t, "Passw0rd1"),
			IsActive:     true,
		}
		repo.On("GetAccountByEmail", ctx, "anna@example.com").Return(account, nil)

		svc := New(repo, testMaker(), bcrypt.MinCost)
		got, token, err := svc.Login(ctx, "anna@example.com", "Passw0rd1")
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("failure modes are indistinguishable", func(t *testing.T) {
		active := &models.Account{ID: 1, Email: "anna@example.com", PasswordHash: hashOf(t, "Passw0rd1"), IsActive: true}
		inactive := &models.Account{ID: 2, Email: "gone@example.com", PasswordHash: hashOf(t, "Passw0rd1"), IsActive: false}

		tests := []struct {
			name     string
			setup    func(*mockAccountRepository)
			email    string
			password string
		}{
			{
				name: "unknown email",
				setup: func(r *mockAccountRepository) {
					r.On("GetAccountByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrNotFound)
				},
				email:    "nobody@example.com",
				password: "Passw0rd1",
			},
			{
				name: "wrong password",
				setup: func(r *mockAccountRepository) {
					r.On("GetAccountByEmail", ctx, "anna@example.com").Return(active, nil)
				},
				email:    "anna@example.com",
				password: "WrongPass1",
			},
			{
				name: "deactivated account",
				setup: func(r *mockAccountRepository) {
					r.On("GetAccountByEmail", ctx, "gone@example.com").Return(inactive, nil)
				},
				email:    "gone@example.com",
				password: "Passw0rd1",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := new(mockAccountRepository)
				tt.setup(repo)

				svc := New(repo, testMaker(), bcrypt.MinCost)
				_, _, err := svc.Login(ctx, tt.email, tt.password)
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			})
		}
	})
}

func TestVerifyToken(t *testing.T) {
	ctx := context.Background()
	maker := testMaker()

	t.Run("valid token", func(t *testing.T) {
		repo := new(mockAccountRepository)
		account := &models.Account{ID: 7, Email: "anna@example.com", IsActive: true}
		repo.On("GetAccountByID", ctx, int64(7)).Return(account, nil)

		token, err := maker.GenerateToken(7)
		require.NoError(t, err)

		svc := New(repo, maker, bcrypt.MinCost)
		got, err := svc.VerifyToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		repo := new(mockAccountRepository)
		svc := New(repo, maker, bcrypt.MinCost)
		_, err := svc.VerifyToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("account deleted after token issued", func(t *testing.T) {
		repo := new(mockAccountRepository)
		repo.On("GetAccountByID", ctx, int64(7)).Return(nil, repository.ErrNotFound)

		token, err := maker.GenerateToken(7)
		require.NoError(t, err)

		svc := New(repo, maker, bcrypt.MinCost)
		_, err = svc.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("account deactivated after token issued", func(t *testing.T) {
		repo := new(mockAccountRepository)
		account := &models.Account{ID: 7, Email: "anna@example.com", IsActive: false}
		repo.On("GetAccountByID", ctx, int64(7)).Return(account, nil)

		token, err := maker.GenerateToken(7)
		require.NoError(t, err)

		svc := New(repo, maker, bcrypt.MinCost)
		_, err = svc.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockAccountRepository)
		account := &models.Account{ID: 1, PasswordHash: hashOf(t, "OldPass12")}
		repo.On("GetAccountByID", ctx, int64(1)).Return(account, nil)
		repo.On("UpdateAccountPassword", ctx, int64(1), mock.MatchedBy(func(h string) bool {
			return h != "" && h != "NewPass12"
		})).Return(nil)

		svc := New(repo, testMaker(), bcrypt.MinCost)
		require.NoError(t, svc.ChangePassword(ctx, 1, "OldPass12", "NewPass12"))
		repo.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(mockAccountRepository)
		account := &models.Account{ID: 1, PasswordHash: hashOf(t, "OldPass12")}
		repo.On("GetAccountByID", ctx, int64(1)).Return(account, nil)

		svc := New(repo, testMaker(), bcrypt.MinCost)
		err := svc.ChangePassword(ctx, 1, "WrongPass1", "NewPass12")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogout(t *testing.T) {
	svc := New(new(mockAccountRepository), testMaker(), bcrypt.MinCost)
	assert.NoError(t, svc.Logout(context.Background(), "any-token"))
}
