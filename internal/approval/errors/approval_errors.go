package errors

import (
	"net/http"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/apperror"
)

var (
	ErrStepNotFound = apperror.New(
		apperror.CodeNotFound,
		"approval step not found",
		http.StatusNotFound,
	)

	ErrNotAssignedApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not the assigned approver for this step",
		http.StatusForbidden,
	)

	ErrStepAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"this approval step has already been decided",
		http.StatusConflict,
	)

	ErrRequestAlreadyFinal = apperror.New(
		apperror.CodeInvalidState,
		"the leave request has already reached a final status",
		http.StatusConflict,
	)

	ErrOutOfOrder = apperror.New(
		apperror.CodeOutOfOrder,
		"earlier approval steps for this request are not yet approved",
		http.StatusConflict,
	)

	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
)
