package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wezacredit-backend/internal/adapter/middleware"
	domainApp "wezacredit-backend/internal/domain/application"
	"wezacredit-backend/internal/usecase/application"
)

type ApplicationHandler struct{ uc *application.Usecase }

func NewApplicationHandler(uc *application.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitAssetReq struct {
	Type        string  `json:"type"        validate:"required,oneof=vehicle equipment property machinery"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year"        validate:"omitempty,gte=1950,lte=2100"`
	Value       float64 `json:"value"       validate:"required,gt=0,dec2"`
	Description string  `json:"description"`
}

type submitApplicationReq struct {
	Asset           submitAssetReq `json:"asset"            validate:"required"`
	RequestedAmount float64        `json:"requested_amount" validate:"required,gt=0,dec2"`
	TermMonths      int            `json:"term_months"      validate:"required,gte=1,lte=120"`
}

func (h *ApplicationHandler) SubmitApplication(c echo.Context) error {
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Submit(c.Request().Context(), middleware.ActorFrom(c), application.SubmitInput{
		AssetType:        req.Asset.Type,
		AssetMake:        req.Asset.Make,
		AssetModel:       req.Asset.Model,
		AssetYear:        req.Asset.Year,
		AssetValue:       req.Asset.Value,
		AssetDescription: req.Asset.Description,
		RequestedAmount:  req.RequestedAmount,
		TermMonths:       req.TermMonths,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	applicationID := c.Param("application_id")
	if !reHex32.MatchString(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application_id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), middleware.ActorFrom(c), applicationID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) ListApplications(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

// Quote previews installments from query parameters without persisting
// anything; the product rate applies when the caller sends none.
func (h *ApplicationHandler) Quote(c echo.Context) error {
	principal, err := strconv.ParseFloat(c.QueryParam("principal"), 64)
	if err != nil || principal <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "principal must be a positive number"})
	}
	termMonths, err := strconv.Atoi(c.QueryParam("term_months"))
	if err != nil || termMonths < 1 || termMonths > 120 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "term_months must be between 1 and 120"})
	}
	rate := h.uc.DefaultRatePercent()
	if raw := c.QueryParam("rate"); raw != "" {
		rate, err = strconv.ParseFloat(raw, 64)
		if err != nil || rate <= 0 || rate > 100 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "rate must be in (0, 100]"})
		}
	}
	return c.JSON(http.StatusOK, h.uc.Quote(principal, rate, termMonths))
}

type scoreWebhookReq struct {
	WezaScore       *domainApp.ScoreResult     `json:"wezascore"`
	FraudAssessment *domainApp.FraudAssessment `json:"fraud_assessment"`
}

// ScoreWebhook ingests the external scoring engine's callback. Payloads are
// stored verbatim; at least one of the two must be present.
func (h *ApplicationHandler) ScoreWebhook(c echo.Context) error {
	applicationID := c.Param("application_id")
	if !reHex32.MatchString(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application_id"})
	}
	var req scoreWebhookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	dto, err := h.uc.AttachScore(c.Request().Context(), application.AttachScoreInput{
		ApplicationID:   applicationID,
		WezaScore:       req.WezaScore,
		FraudAssessment: req.FraudAssessment,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
