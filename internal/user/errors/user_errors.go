package usererrors

import (
	"net/http"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"email already exists",
		http.StatusConflict,
	)
	ErrNIKAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee number already exists",
		http.StatusConflict,
	)
	ErrRoleNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"role not found",
		http.StatusBadRequest,
	)
	ErrDivisionNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"division not found",
		http.StatusBadRequest,
	)
	ErrDivisionAlreadyHasHead = apperror.New(
		apperror.CodeConflict,
		"this division already has a head",
		http.StatusConflict,
	)
	ErrDivisionRequiredForHead = apperror.New(
		apperror.CodeInvalidInput,
		"a division head must belong to a division",
		http.StatusBadRequest,
	)
	ErrProtectedRole = apperror.New(
		apperror.CodeForbidden,
		"users holding this role cannot be deleted",
		http.StatusForbidden,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
)
