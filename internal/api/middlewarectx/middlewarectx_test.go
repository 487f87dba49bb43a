package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fitflow/fitflow-api/internal/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) VerifyToken(ctx context.Context, token string) (*models.Account, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) HasActiveMembership(ctx context.Context, accountID int64) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	member := &models.Account{ID: 1, Email: "anna@example.com", Role: models.RoleMember, IsActive: true}

	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(*MockAuthService)
		expectedStatus int
	}{
		{
			name:       "success - valid token",
			authHeader: "Bearer valid_token",
			setupMocks: func(s *MockAuthService) {
				s.On("VerifyToken", mock.Anything, "valid_token").Return(member, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing authorization header",
			authHeader:     "",
			setupMocks:     func(*MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic abcdef",
			setupMocks:     func(*MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad_token",
			setupMocks: func(s *MockAuthService) {
				s.On("VerifyToken", mock.Anything, "bad_token").Return(nil, errors.New("invalid token")).Once()
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			tt.setupMocks(authService)

			var gotAccount *models.Account
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAccount, _ = AccountFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			Authenticate(authService, newNoopLogger())(inner).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, member, gotAccount)
			}
			authService.AssertExpectations(t)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name           string
		account        *models.Account
		roles          []string
		expectedStatus int
	}{
		{
			name:           "role allowed",
			account:        &models.Account{ID: 1, Role: models.RoleAdmin},
			roles:          []string{models.RoleAdmin},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "one of several roles",
			account:        &models.Account{ID: 1, Role: models.RoleReceptionist},
			roles:          []string{models.RoleAdmin, models.RoleReceptionist},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "role denied",
			account:        &models.Account{ID: 1, Role: models.RoleMember},
			roles:          []string{models.RoleAdmin},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "unauthenticated",
			account:        nil,
			roles:          []string{models.RoleAdmin},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
			if tt.account != nil {
				req = req.WithContext(context.WithValue(req.Context(), AccountKey, tt.account))
			}
			rec := httptest.NewRecorder()

			RequireRoles(newNoopLogger(), tt.roles...)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	tests := []struct {
		name           string
		account        *models.Account
		accountIDParam string
		expectedStatus int
	}{
		{
			name:           "owner allowed",
			account:        &models.Account{ID: 5, Role: models.RoleMember},
			accountIDParam: "5",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "admin allowed for foreign account",
			account:        &models.Account{ID: 1, Role: models.RoleAdmin},
			accountIDParam: "5",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "foreign account denied",
			account:        &models.Account{ID: 2, Role: models.RoleMember},
			accountIDParam: "5",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "invalid account id",
			account:        &models.Account{ID: 2, Role: models.RoleMember},
			accountIDParam: "abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/accounts/"+tt.accountIDParam+"/memberships", nil)
			ctx := context.WithValue(req.Context(), AccountKey, tt.account)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("accountID", tt.accountIDParam)
			ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

			rec := httptest.NewRecorder()
			RequireOwnerOrAdmin(newNoopLogger())(okHandler()).ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRequireActiveMembership(t *testing.T) {
	member := &models.Account{ID: 3, Role: models.RoleMember}

	tests := []struct {
		name           string
		setupMocks     func(*MockMembershipService)
		expectedStatus int
	}{
		{
			name: "active membership",
			setupMocks: func(s *MockMembershipService) {
				s.On("HasActiveMembership", mock.Anything, int64(3)).Return(true, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "no active membership",
			setupMocks: func(s *MockMembershipService) {
				s.On("HasActiveMembership", mock.Anything, int64(3)).Return(false, nil).Once()
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "service error",
			setupMocks: func(s *MockMembershipService) {
				s.On("HasActiveMembership", mock.Anything, int64(3)).Return(false, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			membershipService := new(MockMembershipService)
			tt.setupMocks(membershipService)

			req := httptest.NewRequest(http.MethodPost, "/api/access/checkin", nil)
			req = req.WithContext(context.WithValue(req.Context(), AccountKey, member))
			rec := httptest.NewRecorder()

			RequireActiveMembership(membershipService, newNoopLogger())(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			membershipService.AssertExpectations(t)
		})
	}
}
