package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/utils"
)

const minPasswordLength = 8

// UserService manages store operators
type UserService struct {
	rt       *Runtime
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a new user service
func NewUserService(rt *Runtime, userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserService {
	return &UserService{
		rt:       rt,
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Role      string
}

// CreateUser creates an operator with the admin or seller role
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var fields []apperror.FieldError
	if strings.TrimSpace(input.FirstName) == "" {
		fields = append(fields, apperror.FieldError{Field: "first_name", Message: "is required"})
	}
	if strings.TrimSpace(input.Username) == "" {
		fields = append(fields, apperror.FieldError{Field: "username", Message: "is required"})
	}
	if !strings.Contains(email, "@") {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "must be a valid email"})
	}
	if len(input.Password) < minPasswordLength {
		fields = append(fields, apperror.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if input.Role != entity.RoleAdmin && input.Role != entity.RoleSeller {
		fields = append(fields, apperror.FieldError{Field: "role", Message: "must be admin or seller"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	var user *entity.User
	err := s.rt.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Email already registered")
		}
		existing, err = s.userRepo.GetByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Username already taken")
		}

		role, err := s.roleRepo.GetByName(ctx, input.Role)
		if err != nil {
			return err
		}
		if role == nil {
			return apperror.NewNotFoundError("Role " + input.Role)
		}

		hashedPassword, err := utils.HashPassword(input.Password)
		if err != nil {
			return err
		}

		user = &entity.User{
			FirstName: strings.TrimSpace(input.FirstName),
			LastName:  strings.TrimSpace(input.LastName),
			Username:  strings.TrimSpace(input.Username),
			Email:     email,
			Password:  hashedPassword,
			IsActive:  true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return err
		}
		user.Roles = []entity.Role{*role}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", user.Username).Str("role", input.Role).Msg("user created")
	return user, nil
}

// ListRoles returns all roles with their permissions
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}
