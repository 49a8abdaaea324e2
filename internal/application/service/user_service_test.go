package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/utils"
)

func TestCreateUserAndLogin(t *testing.T) {
	f := newFixture(t)
	jwt := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	auth := service.NewAuthService(memUsers{f.store}, jwt)

	user, err := f.users.CreateUser(f.ctx, &service.CreateUserInput{
		FirstName: "Marta",
		LastName:  "Soto",
		Username:  "msoto",
		Email:     "Marta@Yuyitos.cl",
		Password:  "vendedora123",
		Role:      entity.RoleSeller,
	})
	require.NoError(t, err)
	assert.Equal(t, "marta@yuyitos.cl", user.Email)
	assert.True(t, user.HasRole(entity.RoleSeller))
	assert.NotEqual(t, "vendedora123", user.Password)

	byUsername, err := auth.Login(f.ctx, &service.LoginInput{Login: "msoto", Password: "vendedora123"})
	require.NoError(t, err)
	claims, err := jwt.ValidateAccessToken(byUsername.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, []string{entity.RoleSeller}, claims.Roles)
	assert.ElementsMatch(t, entity.RolePermissions[entity.RoleSeller], claims.Permissions)
	assert.NotContains(t, claims.Permissions, entity.PermManageProcurement)

	_, err = auth.Login(f.ctx, &service.LoginInput{Login: "MARTA@yuyitos.cl", Password: "vendedora123"})
	assert.NoError(t, err)

	_, err = auth.Login(f.ctx, &service.LoginInput{Login: "msoto", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	refreshed, err := auth.RefreshToken(f.ctx, byUsername.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.User.ID)
}

func TestCreateUserRules(t *testing.T) {
	f := newFixture(t)
	input := service.CreateUserInput{FirstName: "Admin", Username: "admin", Email: "admin@yuyitos.cl", Password: "supersecret", Role: entity.RoleAdmin}

	_, err := f.users.CreateUser(f.ctx, &input)
	require.NoError(t, err)

	_, err = f.users.CreateUser(f.ctx, &input)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	bad := input
	bad.Email, bad.Username, bad.Role, bad.Password = "x@yuyitos.cl", "x", "owner", "short"
	_, err = f.users.CreateUser(f.ctx, &bad)
	require.Error(t, err)
	assert.Len(t, apperror.GetAppError(err).Errors, 2)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	auth := service.NewAuthService(memUsers{f.store}, utils.NewJWTManager("s", time.Hour, time.Hour))
	user, err := f.users.CreateUser(f.ctx, &service.CreateUserInput{FirstName: "Luis", Username: "luis", Email: "luis@yuyitos.cl", Password: "password1", Role: entity.RoleSeller})
	require.NoError(t, err)

	err = auth.ChangePassword(f.ctx, &service.ChangePasswordInput{UserID: user.ID, CurrentPassword: "nope", NewPassword: "password2"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	require.NoError(t, auth.ChangePassword(f.ctx, &service.ChangePasswordInput{UserID: user.ID, CurrentPassword: "password1", NewPassword: "password2"}))
	_, err = auth.Login(f.ctx, &service.LoginInput{Login: "luis", Password: "password2"})
	assert.NoError(t, err)
}
