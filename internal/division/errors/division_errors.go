package errors

import (
	"net/http"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/apperror"
)

var (
	ErrDivisionNotFound = apperror.New(
		apperror.CodeNotFound,
		"division not found",
		http.StatusNotFound,
	)

	ErrDivisionNameTaken = apperror.New(
		apperror.CodeConflict,
		"a division with this name already exists",
		http.StatusConflict,
	)
)
