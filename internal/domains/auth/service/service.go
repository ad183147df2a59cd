package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/jwt"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/auth/model/dto"
	userModel "hotelbook/internal/domains/user/model"
	userRepo "hotelbook/internal/domains/user/repository"
	"hotelbook/shared"
	"hotelbook/shared/clock"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/shared/password"
	gRepo "hotelbook/shared/repository"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	msgEmailRegistered    = "email already registered"
	msgInvalidCredentials = "invalid email or password"
	msgDeactivated        = "user account is deactivated"
	msgWrongPassword      = "current password is incorrect"
	msgPasswordUnchanged  = "new password must differ from the current one"
)

// decoyHash is compared against when the email is unknown so the response time does not reveal
// which emails are registered.
var decoyHash = sync.OnceValue(func() string {
	hash, _ := password.Hash("decoy-password")

	return hash
})

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	clock      clock.Clock
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, clock clock.Clock) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		clock:      clock,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, userRepo.EmailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString(msgEmailRegistered) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword, s.clock.Now())

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.BadRequestFromString(msgEmailRegistered) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.verifyCredentials(ctx, req)
	if err != nil {
		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err = s.recordLogin(ctx, user, req.Password); err != nil {
		return res, err
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// verifyCredentials returns the active user owning req's email and password. Unknown emails and
// wrong passwords get the same answer and take about as long.
func (s *serviceImpl) verifyCredentials(ctx context.Context, req dto.LoginRequest) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, userRepo.EmailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		_ = password.Verify(req.Password, decoyHash())

		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")

		return user, failure.BadRequestFromString(msgInvalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("user_id", user.ID).Msg("login attempt with wrong password")

		return user, failure.BadRequestFromString(msgInvalidCredentials) // nolint:wrapcheck
	}

	if !user.Active {
		return user, failure.BadRequestFromString(msgDeactivated) // nolint:wrapcheck
	}

	return user, nil
}

// recordLogin stamps the login time and upgrades a hash made at an outdated cost. A failed
// upgrade keeps the old hash.
func (s *serviceImpl) recordLogin(ctx context.Context, user userModel.User, plain string) error {
	stamp := dto.UpdateLastLoginRequest{LastLogin: s.clock.Now()}

	if password.NeedsRehash(user.Password) {
		upgraded, err := password.Hash(plain)
		if err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to upgrade password hash")
		} else {
			stamp.Password = upgraded
		}
	}

	filter := shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)

	if _, err := s.userRepo.Update(ctx, shared.TransformFields(stamp, user.ID), filter); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err = password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString(msgWrongPassword) // nolint:wrapcheck
	}

	if req.NewPassword == req.CurrentPassword {
		return failure.BadRequestFromString(msgPasswordUnchanged) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if _, err = s.userRepo.Update(ctx, shared.TransformFields(updatePassword, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
