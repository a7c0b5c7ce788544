package errors

import (
	"net/http"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/apperror"
)

var (
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)

	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"a pending leave request already exists in an overlapping period",
		http.StatusConflict,
	)

	ErrRequestNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only PENDING leave requests can be changed or withdrawn",
		http.StatusConflict,
	)

	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"you do not own this leave request",
		http.StatusForbidden,
	)
)
