package auth_test

import (
	"context"
	"testing"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/auth"
	autherrors "github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	getByEmailFn func(ctx context.Context, email string) (*auth.AuthUser, error)
	getByIDFn    func(ctx context.Context, id string) (*auth.AuthUser, error)
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.AuthUser, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id string) (*auth.AuthUser, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func activeUser(t *testing.T, password string) *auth.AuthUser {
	t.Helper()
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &auth.AuthUser{
		ID:       uuid.New(),
		Name:     "Budi Santoso",
		Email:    "budi@example.com",
		NIK:      "EMP-2026-0001",
		Password: string(pw),
		RoleName: "EMPLOYEE",
		IsActive: true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	password := "password123"

	t.Run("success", func(t *testing.T) {
		user := activeUser(t, password)
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.AuthUser, error) {
				assert.Equal(t, user.Email, email)
				return user, nil
			},
		}
		svc := auth.NewService(repo)

		token, refreshToken, resp, err := svc.Login(ctx, user.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, "EMPLOYEE", resp.Role)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		user := activeUser(t, password)
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.AuthUser, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, user.Email, "wrongpass")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})

		_, _, _, err := svc.Login(ctx, "nobody@example.com", password)

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive account", func(t *testing.T) {
		user := activeUser(t, password)
		user.IsActive = false
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.AuthUser, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, user.Email, password)

		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	password := "password123"

	t.Run("success role is re-read from the database", func(t *testing.T) {
		user := activeUser(t, password)
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.AuthUser, error) {
				return user, nil
			},
			getByIDFn: func(ctx context.Context, id string) (*auth.AuthUser, error) {
				assert.Equal(t, user.ID.String(), id)
				promoted := *user
				promoted.RoleName = "DIVISION_HEAD"
				return &promoted, nil
			},
		}
		svc := auth.NewService(repo)

		_, refreshToken, _, err := svc.Login(ctx, user.Email, password)
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, "DIVISION_HEAD", resp.Role)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative account deactivated since issue", func(t *testing.T) {
		user := activeUser(t, password)
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.AuthUser, error) {
				return user, nil
			},
			getByIDFn: func(ctx context.Context, id string) (*auth.AuthUser, error) {
				deactivated := *user
				deactivated.IsActive = false
				return &deactivated, nil
			},
		}
		svc := auth.NewService(repo)

		_, refreshToken, _, err := svc.Login(ctx, user.Email, password)
		assert.NoError(t, err)

		_, _, _, err = svc.RefreshToken(ctx, refreshToken)

		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user := activeUser(t, "password123")
		repo := &fakeAuthRepository{
			getByIDFn: func(ctx context.Context, id string) (*auth.AuthUser, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.GetMe(ctx, user.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, user.NIK, resp.NIK)
	})

	t.Run("negative malformed user id", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})

		_, err := svc.GetMe(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("negative user not found", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})

		_, err := svc.GetMe(ctx, uuid.NewString())

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
