package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	domainApp "wezacredit-backend/internal/domain/application"
	domainAsset "wezacredit-backend/internal/domain/asset"
	domainLoan "wezacredit-backend/internal/domain/loan"
	domainPayment "wezacredit-backend/internal/domain/payment"
	domainProfile "wezacredit-backend/internal/domain/profile"
	ucApplication "wezacredit-backend/internal/usecase/application"
	ucRepayment "wezacredit-backend/internal/usecase/repayment"
)

// writeDomainError maps usecase/domain errors onto the HTTP status taxonomy.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domainApp.ErrNotFound),
		errors.Is(err, domainLoan.ErrNotFound),
		errors.Is(err, domainAsset.ErrNotFound),
		errors.Is(err, domainProfile.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domainApp.ErrAlreadyDecided),
		errors.Is(err, domainApp.ErrInvalidTransition),
		errors.Is(err, ucRepayment.ErrLoanNotOpen):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domainApp.ErrAmountExceedsLimit):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domainProfile.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domainApp.ErrReasonRequired),
		errors.Is(err, domainAsset.ErrInvalidType),
		errors.Is(err, domainAsset.ErrInvalidValue),
		errors.Is(err, domainLoan.ErrInvalidAmount),
		errors.Is(err, domainPayment.ErrInvalidMethod),
		errors.Is(err, ucApplication.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
