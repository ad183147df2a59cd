package middleware

import (
	"context"
	"errors"
	"hotelbook/config"
	"hotelbook/infras/jwt"
	"hotelbook/infras/otel"
	"hotelbook/permissions"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/transport/http/response"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// internalCaller marks requests authenticated by API key. Auth and RBAC let them through.
type internalCaller struct{}

// Auth authenticates callers by bearer token or internal API key.
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role authorizes authenticated callers by role.
type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func isInternal(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCaller{}).(bool)

	return internal
}

// routePermission resolves the permission entry of the chi route pattern that serves request.
func (m *authRoleImpl) routePermission(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if m.permission == nil || rctx == nil || rctx.Routes == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return path, m.permission.FindPermissions(path, request.Method)
}

// tokenFailure turns a header or token error into the 401 the client sees.
func tokenFailure(err error) error {
	switch {
	case errors.Is(err, jwt.ErrMissingAuthorization):
		return failure.Unauthorized("Missing authorization header")
	case errors.Is(err, jwt.ErrMalformedAuthorization):
		return failure.Unauthorized("Invalid authorization header format")
	case errors.Is(err, jwt.ErrExpiredToken):
		return failure.Unauthorized("Token has expired")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return failure.Unauthorized("Invalid token claims")
	default:
		return failure.Unauthorized("Invalid token")
	}
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)

	return context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)
}

// authenticate returns the request context carrying the caller's claims. It returns the context
// unchanged for internal callers and for routes marked "skip" in permissions.json.
func (m *authRoleImpl) authenticate(request *http.Request) (ctx context.Context, err error) {
	ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	path, permission := m.routePermission(request)
	if isInternal(ctx) || permission.Skip {
		return request.Context(), nil
	}

	scope.SetAttributes(map[string]any{
		"middleware.type": "auth",
		"http.path":       path,
		"http.method":     request.Method,
	})

	token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
	if err != nil {
		return nil, tokenFailure(err)
	}

	claims, err := m.jwtService.ValidateToken(token, jwt.AccessToken)
	if err != nil {
		return nil, tokenFailure(err)
	}

	if claims.UserID == constant.Empty || claims.Email == constant.Empty {
		log.Error().Str("token_id", claims.TokenID).Msg("token claims are missing the user id or email")

		return nil, tokenFailure(jwt.ErrInvalidClaim)
	}

	return withClaims(request.Context(), claims), nil
}

// Auth validates the access token and stores its claims in the request context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, err := m.authenticate(request)
		if err != nil {
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// authorize reports whether the caller's role is listed for the route. Routes without a role list
// are open to any authenticated caller. It must run after Auth.
func (m *authRoleImpl) authorize(request *http.Request) (err error) {
	ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if isInternal(ctx) {
		return nil
	}

	if m.permission == nil {
		return failure.ForbiddenError
	}

	_, permission := m.routePermission(request)
	if m.permission.Skip || permission.Skip || len(permission.Permissions) == 0 {
		return nil
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if slices.Contains(permission.Permissions, role) {
		return nil
	}

	scope.SetAttributes(map[string]any{
		"user_role":     role,
		"allowed_roles": permission.Permissions,
		"reason":        "role_not_allowed",
	})

	return failure.ForbiddenError
}

// RBAC rejects callers whose role is not listed for the route.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if err := m.authorize(request); err != nil {
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal callers holding the configured key bypass Auth and RBAC. Requests without
// the header continue as regular clients.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		internal := key != constant.Empty

		if internal {
			scope.SetAttribute("http.source", "internal")
		} else {
			scope.SetAttribute("http.source", "client")
		}

		if internal && (m.cfg.App.APIKey == constant.Empty || key != m.cfg.App.APIKey) {
			scope.TraceError(failure.ForbiddenError)
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, internalCaller{}, internal)))
	})
}
