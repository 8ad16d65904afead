// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "inventory/internal/delivery/context"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	"inventory/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const loginSuccessMessage = "Login successful"

type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	metrics      service.MetricsRecorder
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Metrics      service.MetricsRecorder
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		metrics:      params.Metrics,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login resolves the identifier against username, email and phone number in one lookup.
// Unknown identifiers, wrong passwords and deactivated accounts fail identically.
func (srv *authService) Login(ctx context.Context, req *usecase.LoginRequest) (*usecase.LoginResponse, error) {
	user, err := srv.userRepo.FindByIdentifier(ctx, req.Identifier)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, srv.loginFailed(ctx, "unknown identifier")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up user for login")
	}

	if !srv.hasher.Check(req.Password, user.PasswordHash) {
		return nil, srv.loginFailed(ctx, "password mismatch")
	}

	if !user.IsActive {
		return nil, srv.loginFailed(ctx, "account deactivated")
	}

	token, err := srv.tokenService.IssueToken(service.SubjectFromUserID(user.ID), user.Roles.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.metrics.RecordLogin(true)
	srv.log(ctx).Info("User logged in", slog.Int64("userID", user.ID))

	return &usecase.LoginResponse{Token: token, Message: loginSuccessMessage}, nil
}

func (srv *authService) loginFailed(ctx context.Context, reason string) error {
	srv.metrics.RecordLogin(false)
	srv.log(ctx).Info("Login rejected", slog.String("reason", reason))

	return domainerrors.ErrInvalidCredentials
}
