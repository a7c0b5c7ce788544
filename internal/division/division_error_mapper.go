package division

import (
	"errors"
	"strings"

	divisionerrors "github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/division/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return divisionerrors.ErrDivisionNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_division_name" {
			return divisionerrors.ErrDivisionNameTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_division_name") {
		return divisionerrors.ErrDivisionNameTaken
	}

	return err
}
