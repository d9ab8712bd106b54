package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wezacredit-backend/internal/usecase/repayment"
)

// PaymentHandler ingests repayment webhooks from the payment collaborator.
type PaymentHandler struct{ uc *repayment.Usecase }

func NewPaymentHandler(uc *repayment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	Amount               float64 `json:"amount"                validate:"required,gt=0,dec2"`
	Method               string  `json:"method"                validate:"required,oneof=mpesa airtel bank_transfer card manual"`
	TransactionReference string  `json:"transaction_reference"`
}

func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Record(c.Request().Context(), repayment.RecordInput{
		LoanID:               loanID,
		Amount:               req.Amount,
		Method:               req.Method,
		TransactionReference: req.TransactionReference,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
