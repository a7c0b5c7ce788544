package division_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/division"
	divisionerrors "github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/division/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDivisionRepository struct {
	withTxFn   func(tx *sql.Tx) division.Repository
	createFn   func(ctx context.Context, d *division.Division) error
	findAllFn  func(ctx context.Context) ([]division.Division, error)
	findByIDFn func(ctx context.Context, id string) (*division.Division, error)
	updateFn   func(ctx context.Context, d *division.Division) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeDivisionRepository) WithTx(tx *sql.Tx) division.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeDivisionRepository) Create(ctx context.Context, d *division.Division) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeDivisionRepository) FindAll(ctx context.Context) ([]division.Division, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeDivisionRepository) FindByID(ctx context.Context, id string) (*division.Division, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDivisionRepository) Update(ctx context.Context, d *division.Division) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, d)
	}
	return nil
}

func (f *fakeDivisionRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type divisionServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service division.Service
	repo    *fakeDivisionRepository
}

func setupDivisionServiceTest(t *testing.T) *divisionServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeDivisionRepository{}
	svc := division.NewService(db, repo)

	return &divisionServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func TestDivisionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupDivisionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.createFn = func(ctx context.Context, d *division.Division) error {
			assert.Equal(t, "Engineering", d.Name)
			assert.NotEqual(t, uuid.Nil, d.ID)
			return nil
		}

		resp, err := deps.service.Create(ctx, division.CreateDivisionRequest{Name: "Engineering"})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate name", func(t *testing.T) {
		deps := setupDivisionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.createFn = func(ctx context.Context, d *division.Division) error {
			return errors.New(`duplicate key value violates unique constraint "uq_division_name"`)
		}

		_, err := deps.service.Create(ctx, division.CreateDivisionRequest{Name: "Engineering"})

		assert.ErrorIs(t, err, divisionerrors.ErrDivisionNameTaken)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDivisionService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupDivisionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*division.Division, error) {
			assert.Equal(t, id.String(), targetID)
			return &division.Division{ID: id, Name: "Engineering"}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, d *division.Division) error {
			assert.Equal(t, "Product Engineering", d.Name)
			return nil
		}

		resp, err := deps.service.Update(ctx, id.String(), division.UpdateDivisionRequest{Name: "Product Engineering"})

		assert.NoError(t, err)
		assert.Equal(t, "Product Engineering", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupDivisionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Update(ctx, uuid.NewString(), division.UpdateDivisionRequest{Name: "Finance"})

		assert.ErrorIs(t, err, divisionerrors.ErrDivisionNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDivisionService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupDivisionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*division.Division, error) {
			return &division.Division{ID: id, Name: "Engineering"}, nil
		}

		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, targetID string) error {
			deleted = true
			return nil
		}

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupDivisionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		err := deps.service.Delete(ctx, uuid.NewString())

		assert.ErrorIs(t, err, divisionerrors.ErrDivisionNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDivisionService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupDivisionServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]division.Division, error) {
			return []division.Division{
				{ID: uuid.New(), Name: "Engineering"},
				{ID: uuid.New(), Name: "Finance"},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Engineering", resp[0].Name)
	})
}
