package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitflow/fitflow-api/internal/models"
	"github.com/fitflow/fitflow-api/internal/services/auth"
)

// MockAuthService реализует интерфейс login.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.Account), args.String(1), args.Error(2)
}

// MockMembershipService реализует интерфейс login.MembershipService
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) ActiveSummary(ctx context.Context, accountID int64) (*models.MembershipSummary, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipSummary), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	account := &models.Account{ID: 1, Email: "anna@example.com", Role: models.RoleMember, IsActive: true}
	summary := &models.MembershipSummary{
		ID:                10,
		StartDate:         "2025-06-01",
		EndDate:           "2025-06-30",
		Status:            models.StatusActive,
		DaysRemaining:     15,
		StatusDescription: "valid",
	}

	tests := []struct {
		name           string
		requestBody    any
		setupMocks     func(*MockAuthService, *MockMembershipService)
		expectedStatus int
		checkBody      func(*testing.T, map[string]any)
	}{
		{
			name:        "успешный вход с активным членством",
			requestBody: map[string]any{"email": "anna@example.com", "password": "Passw0rd1"},
			setupMocks: func(a *MockAuthService, ms *MockMembershipService) {
				a.On("Login", mock.Anything, "anna@example.com", "Passw0rd1").
					Return(account, "token123", nil)
				ms.On("ActiveSummary", mock.Anything, int64(1)).Return(summary, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "token123", body["token"])
				assert.NotNil(t, body["activeMembership"])
			},
		},
		{
			name:        "успешный вход без членства",
			requestBody: map[string]any{"email": "anna@example.com", "password": "Passw0rd1"},
			setupMocks: func(a *MockAuthService, ms *MockMembershipService) {
				a.On("Login", mock.Anything, "anna@example.com", "Passw0rd1").
					Return(account, "token123", nil)
				ms.On("ActiveSummary", mock.Anything, int64(1)).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"])
				assert.NotContains(t, body, "activeMembership")
			},
		},
		{
			name:        "неверные учётные данные",
			requestBody: map[string]any{"email": "anna@example.com", "password": "wrong"},
			setupMocks: func(a *MockAuthService, _ *MockMembershipService) {
				a.On("Login", mock.Anything, "anna@example.com", "wrong").
					Return(nil, "", auth.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, "invalid email or password", body["message"])
			},
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMocks:     func(*MockAuthService, *MockMembershipService) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "invalid request body", body["message"])
			},
		},
		{
			name:        "ошибка сервиса",
			requestBody: map[string]any{"email": "anna@example.com", "password": "Passw0rd1"},
			setupMocks: func(a *MockAuthService, _ *MockMembershipService) {
				a.On("Login", mock.Anything, "anna@example.com", "Passw0rd1").
					Return(nil, "", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "internal service error", body["message"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			membershipService := new(MockMembershipService)
			tt.setupMocks(authService, membershipService)

			handler := New(logger, authService, membershipService)

			var body []byte
			var err error
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var got map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			tt.checkBody(t, got)

			authService.AssertExpectations(t)
			membershipService.AssertExpectations(t)
		})
	}
}
