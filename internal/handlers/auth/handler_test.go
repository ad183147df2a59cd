package auth_test

import (
	"context"
	"errors"
	"hotelbook/infras/otel/mocks"
	authMocks "hotelbook/internal/domains/auth/mocks"
	"hotelbook/internal/domains/auth/model/dto"
	"hotelbook/internal/handlers/auth"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (http.Handler, *authMocks.MockAuth) {
	t.Helper()

	svc := authMocks.NewMockAuth(gomock.NewController(t))
	handler := auth.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := r.Header.Get("X-Test-User"); user != "" {
				r = r.WithContext(context.WithValue(r.Context(), constant.ContextKeyUserID, user))
			}

			next.ServeHTTP(w, r)
		})
	})
	handler.Router(router)

	return router, svc
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		user      string
		setupMock func(svc *authMocks.MockAuth)
		wantCode  int
		wantBody  string
	}{
		{
			name:   "register",
			method: http.MethodPost,
			path:   "/auth/register",
			body:   `{"name":"Jane Doe","email":"jane@example.com","password":"s3cretpass","role":"customer","phone":"081234567890"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(dto.RegisterResponse{ID: "user-1", Email: "jane@example.com", Role: "customer"}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `"role":"customer"`,
		},
		{
			name:      "register with unknown role",
			method:    http.MethodPost,
			path:      "/auth/register",
			body:      `{"name":"Jane Doe","email":"jane@example.com","password":"s3cretpass","role":"admin","phone":"081234567890"}`,
			setupMock: func(_ *authMocks.MockAuth) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "role must be one of customer owner",
		},
		{
			name:   "login rejected",
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"jane@example.com","password":"wrong"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "jane@example.com", Password: "wrong"}).
					Return(dto.LoginResponse{}, failure.BadRequestFromString("invalid email or password"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: "invalid email or password",
		},
		{
			name:   "refresh",
			method: http.MethodPost,
			path:   "/auth/refresh-token",
			body:   `{"refresh_token":"r1"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "r1"}).
					Return(dto.RefreshTokenResponse{AccessToken: "a2", TokenType: "Bearer"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"access_token":"a2"`,
		},
		{
			name:      "change password anonymously",
			method:    http.MethodPatch,
			path:      "/auth/password",
			body:      `{"current_password":"old-pass1","new_password":"new-pass12"}`,
			setupMock: func(_ *authMocks.MockAuth) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:   "change password",
			method: http.MethodPatch,
			path:   "/auth/password",
			body:   `{"current_password":"old-pass1","new_password":"new-pass12"}`,
			user:   "user-1",
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().ChangePassword(gomock.Any(), dto.ChangePasswordRequest{CurrentPassword: "old-pass1", NewPassword: "new-pass12"}, "user-1").
					Return(nil)
			},
			wantCode: http.StatusOK,
			wantBody: "Password changed successfully",
		},
		{
			name:   "storage failure is masked",
			method: http.MethodPatch,
			path:   "/auth/password",
			body:   `{"current_password":"old-pass1","new_password":"new-pass12"}`,
			user:   "user-1",
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().ChangePassword(gomock.Any(), gomock.Any(), "user-1").
					Return(errors.New("pq: connection refused"))
			},
			wantCode: http.StatusInternalServerError,
			wantBody: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.user != "" {
				req.Header.Set("X-Test-User", tt.user)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}
