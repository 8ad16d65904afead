package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	"inventory/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	welcomeSubject = "Welcome to the Inventory Management System"
	welcomeBody    = "Hello %s,\n\n" +
		"Thank you for joining our Inventory Management System! We're excited to help you efficiently manage and track inventory.\n\n" +
		"With our system, you can streamline operations, stay organized, and make data-driven decisions to enhance productivity.\n\n" +
		"Best regards,\n" +
		"Inventory Management Team"

	entityUser = "user"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	hasher      service.PasswordHasher
	emailSender service.EmailSender
	metrics     service.MetricsRecorder
	logger      *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	Hasher      service.PasswordHasher
	EmailSender service.EmailSender
	Metrics     service.MetricsRecorder
	Logger      *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		hasher:      params.Hasher,
		emailSender: params.EmailSender,
		metrics:     params.Metrics,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser creates an active account. Suppliers get a profile built from their own details.
func (srv *userService) RegisterUser(ctx context.Context, principal *entity.Principal, req *usecase.UserRequest) (*usecase.UserResponse, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", req.Username), slog.Any("roles", req.Roles))

	user := &entity.User{IsActive: true}
	if err := applyUserRequest(user, req); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(req.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}
	user.PasswordHash = hash

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roles, err := resolveRoles(ctx, repoFactory.NewRoleRepository(), principal, req.Roles)
		if err != nil {
			return err
		}
		user.Roles = roles
		user.EnsureSupplierProfile()

		return repoFactory.NewUserRepository().Create(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", req.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register user")
	}

	srv.metrics.RecordEntityOperation(entityUser, "create")
	srv.sendWelcomeEmail(ctx, user)

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", user.ID))

	return toUserResponse(user), nil
}

// sendWelcomeEmail never fails the registration; delivery problems are only logged.
func (srv *userService) sendWelcomeEmail(ctx context.Context, user *entity.User) {
	name := user.FullName
	if name == "" {
		name = user.Username
	}

	msg := service.EmailMessage{
		To:      user.Email,
		Subject: welcomeSubject,
		Body:    fmt.Sprintf(welcomeBody, name),
	}
	if err := srv.emailSender.Send(ctx, msg); err != nil {
		srv.log(ctx).Error("Failed to send welcome email", slog.Int64("userID", user.ID), slog.Any("error", err))
	}
}

// UpdateUser replaces the user's fields and roles. The password changes only when one is given.
func (srv *userService) UpdateUser(ctx context.Context, principal *entity.Principal, id int64, req *usecase.UserRequest) (*usecase.UserResponse, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return userLookupError(err, "id", id)
		}

		roles, err := resolveRoles(ctx, repoFactory.NewRoleRepository(), principal, req.Roles)
		if err != nil {
			return err
		}

		if err := applyUserRequest(user, req); err != nil {
			return err
		}
		user.Roles = roles

		if req.Password != "" {
			hash, err := srv.hasher.Hash(req.Password)
			if err != nil {
				return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
			}
			user.PasswordHash = hash
		}

		user.EnsureSupplierProfile()
		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.metrics.RecordEntityOperation(entityUser, "update")

	return toUserResponse(updated), nil
}

func (srv *userService) GetUserByID(ctx context.Context, id int64) (*usecase.UserResponse, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err, "id", id)
	}

	return toUserResponse(user), nil
}

func (srv *userService) GetUserByUsername(ctx context.Context, username string) (*usecase.UserResponse, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, userLookupError(err, "username", username)
	}

	return toUserResponse(user), nil
}

func (srv *userService) GetUserByEmail(ctx context.Context, email string) (*usecase.UserResponse, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, userLookupError(err, "email", email)
	}

	return toUserResponse(user), nil
}

func (srv *userService) GetAllUsers(ctx context.Context) ([]*usecase.UserResponse, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return toUserResponses(users), nil
}

func (srv *userService) ActivateUser(ctx context.Context, id int64) (*usecase.UserResponse, error) {
	return srv.setActive(ctx, id, true)
}

func (srv *userService) DeactivateUser(ctx context.Context, id int64) (*usecase.UserResponse, error) {
	return srv.setActive(ctx, id, false)
}

func (srv *userService) setActive(ctx context.Context, id int64, active bool) (*usecase.UserResponse, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return userLookupError(err, "id", id)
		}

		user.IsActive = active
		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to change user activation")
	}

	operation := "deactivate"
	if active {
		operation = "activate"
	}
	srv.metrics.RecordEntityOperation(entityUser, operation)
	srv.log(ctx).Info("User activation changed", slog.Int64("userID", id), slog.Bool("active", active))

	return toUserResponse(updated), nil
}

// DeleteUser removes, in one transaction, the user's orders, their supplier profile with its
// products, the role links and finally the user. Ordered products are never removed.
func (srv *userService) DeleteUser(ctx context.Context, id int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.NewUserRepository().FindByID(ctx, id); err != nil {
			return userLookupError(err, "id", id)
		}

		return deleteUserCascade(ctx, repoFactory, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.metrics.RecordEntityOperation(entityUser, "delete")
	srv.log(ctx).Info("Deleted user", slog.Int64("userID", id))

	return nil
}

// deleteUserCascade is shared with supplier deletion.
func deleteUserCascade(ctx context.Context, repoFactory repository.RepositoryFactory, userID int64) error {
	if err := repoFactory.NewOrderRepository().DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	supplier, err := repoFactory.NewSupplierRepository().FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrSupplierNotFound):
	case err != nil:
		return errors.Wrap(err, "failed to find supplier profile")
	default:
		if err := deleteSupplierProfile(ctx, repoFactory, supplier); err != nil {
			return err
		}
	}

	return repoFactory.NewUserRepository().Delete(ctx, userID)
}

// deleteSupplierProfile removes the supplier's products, their order links and the profile row.
func deleteSupplierProfile(ctx context.Context, repoFactory repository.RepositoryFactory, supplier *entity.SupplierProfile) error {
	if err := repoFactory.NewOrderRepository().RemoveProductLinks(ctx, supplier.ProductIDs); err != nil {
		return err
	}

	if err := repoFactory.NewProductRepository().DeleteBySupplierID(ctx, supplier.ID); err != nil {
		return err
	}

	return repoFactory.NewSupplierRepository().Delete(ctx, supplier.ID)
}

// resolveRoles applies the role assignment rule and loads the stored roles.
// Admins may assign any stored role; everyone else only SUPPLIER and CUSTOMER.
func resolveRoles(ctx context.Context, roleRepo repository.RoleRepository, principal *entity.Principal, names []string) (entity.Roles, error) {
	isAdmin := principal.IsAdmin()

	if !isAdmin {
		for _, name := range names {
			if entity.Role(name) == entity.RoleAdmin {
				return nil, domainerrors.ErrRoleAssignmentDenied
			}
		}
	}

	roles := make(entity.Roles, 0, len(names))
	for _, name := range names {
		role := entity.Role(name)
		if !isAdmin && role != entity.RoleSupplier && role != entity.RoleCustomer {
			return nil, domainerrors.ErrInvalidRole
		}

		stored, err := roleRepo.FindByName(ctx, name)
		if errors.Is(err, repository.ErrRoleNotFound) {
			return nil, domainerrors.ErrRoleNotFound.WithMessagef("Role not found: %s", name)
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find role")
		}

		if !roles.Contains(stored) {
			roles = append(roles, stored)
		}
	}

	return roles, nil
}

func userLookupError(err error, key string, value any) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound.WithMessagef("User not found with %s: %v", key, value)
	}

	return errors.Wrap(err, "failed to find user")
}
