package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/services/appointment"
	"medibook/services/scheduling"
)

// statusForError maps the typed core errors onto HTTP statuses. Anything
// unrecognized is treated as an internal error.
func statusForError(err error) int {
	var lifecycleErr *appointment.LifecycleError
	if errors.As(err, &lifecycleErr) {
		switch lifecycleErr {
		case appointment.ErrForbidden, appointment.ErrCancellationNotAllowed:
			return http.StatusForbidden
		case appointment.ErrPaymentRequired:
			return http.StatusPaymentRequired
		case appointment.ErrTerminalState, appointment.ErrDoctorUnavailable:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}
	var ledgerErr *scheduling.LedgerError
	if errors.As(err, &ledgerErr) {
		switch ledgerErr {
		case scheduling.ErrSlotTaken:
			return http.StatusConflict
		case scheduling.ErrSlotNotFound:
			return http.StatusNotFound
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the typed error as the standard JSON envelope.
func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
