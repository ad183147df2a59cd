package auth

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/auth/model/dto"
	"hotelbook/internal/domains/auth/service"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const msgPasswordChanged = "Password changed successfully"

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Patch("/password", handler.ChangePassword)
	})
}

// reject traces err on scope and writes it. Client errors are not logged.
func reject(w http.ResponseWriter, scope otel.Scope, err error, action string) {
	scope.TraceError(err)

	if failure.GetCode(err) >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("failed to " + action)
	}

	response.WithError(w, err)
}

// Register creates a guest or hotel owner account.
// @Summary Register a new user
// @Description Register a customer or hotel owner account.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Data[dto.RegisterResponse] "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	var req dto.RegisterRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "decode register request")

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		reject(w, scope, err, "register user")

		return
	}

	scope.AddEvent("registered " + res.Role)

	response.WithJSON(w, http.StatusCreated, res)
}

// Login exchanges credentials for a token pair.
// @Summary Login a user
// @Description Login a user with the provided credentials.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse] "User logged in successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "decode login request")

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		reject(w, scope, err, "login user")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken trades a refresh token for a new pair.
// @Summary Refresh user token
// @Description Refresh user token using the provided refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse] "Token refreshed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "decode refresh request")

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		reject(w, scope, err, "refresh token")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword replaces the caller's password.
// @Summary Change password
// @Description Replace the authenticated user's password after verifying the current one.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message "Password changed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/password [patch]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		reject(w, scope, failure.Unauthorized("unauthorized"), "change password")

		return
	}

	var req dto.ChangePasswordRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "decode change password request")

		return
	}

	if err := handler.service.ChangePassword(ctx, req, userID); err != nil {
		reject(w, scope, err, "change password")

		return
	}

	response.WithMessage(w, http.StatusOK, msgPasswordChanged)
}
