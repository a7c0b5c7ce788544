package directoryerrors

import (
	"net/http"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/apperror"
)

// Both errors are server-side misconfiguration, not user input problems:
// a missing approver means the org chart is incomplete.
var (
	ErrUnknownRole = apperror.New(
		apperror.CodeUnknownRole,
		"role is not part of the configured approval hierarchy",
		http.StatusInternalServerError,
	)
	ErrNoApproverConfigured = apperror.New(
		apperror.CodeNoApproverConfigured,
		"no active user holds the required approver role",
		http.StatusInternalServerError,
	)
)
