package impl

import (
	"context"
	"log/slog"

	"inventory/config"
	"inventory/internal/domain/entity"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdminSeederParams holds dependencies for the bootstrap administrator, injected by Fx.
type AdminSeederParams struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// RegisterAdminSeeder creates the configured administrator on startup.
func RegisterAdminSeeder(params AdminSeederParams) {
	if params.Config.Seed == nil || params.Config.Seed.Admin == nil || params.Config.Seed.Admin.Username == "" {
		return
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return SeedAdmin(ctx, params.TxManager, params.Hasher, params.Config.Seed.Admin, params.Logger)
		},
	})
}

// SeedAdmin creates an active ADMIN account unless a user with the same username exists.
func SeedAdmin(
	ctx context.Context,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	admin *config.SeedAdminConfig,
	logger *slog.Logger,
) error {
	if admin.Password == "" {
		return errors.New("seed.admin.password must be set")
	}

	return txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByUsername(ctx, admin.Username)
		if err == nil {
			logger.Debug("Bootstrap admin already exists", slog.String("username", admin.Username))

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up bootstrap admin")
		}

		role, err := repoFactory.NewRoleRepository().FindByName(ctx, entity.RoleAdmin.String())
		if err != nil {
			return errors.Wrap(err, "failed to find admin role")
		}

		hash, err := hasher.Hash(admin.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash bootstrap admin password")
		}

		user := &entity.User{
			Username:     admin.Username,
			Email:        admin.Email,
			PhoneNumber:  admin.Phone,
			FullName:     admin.FullName,
			PasswordHash: hash,
			IsActive:     true,
			Roles:        entity.Roles{role},
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create bootstrap admin")
		}

		logger.Info("Bootstrap admin created", slog.Int64("userID", user.ID), slog.String("username", user.Username))

		return nil
	})
}
