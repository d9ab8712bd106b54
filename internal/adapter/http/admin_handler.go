package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"wezacredit-backend/internal/adapter/middleware"
	domainApp "wezacredit-backend/internal/domain/application"
	"wezacredit-backend/internal/usecase/decision"
)

// AdminHandler exposes the review queue and every administrator decision.
// Role checks live in the usecase; the RequireDecider middleware only
// short-circuits the obvious cases.
type AdminHandler struct{ uc *decision.Usecase }

func NewAdminHandler(uc *decision.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

func (h *AdminHandler) applicationID(c echo.Context) (string, bool) {
	id := c.Param("application_id")
	return id, reHex32.MatchString(id)
}

func (h *AdminHandler) StartReview(c echo.Context) error {
	applicationID, ok := h.applicationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application_id"})
	}
	dto, err := h.uc.StartReview(c.Request().Context(), middleware.ActorFrom(c), applicationID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type approveReq struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) Approve(c echo.Context) error {
	applicationID, ok := h.applicationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application_id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Approve(c.Request().Context(), middleware.ActorFrom(c), decision.ApproveInput{
		ApplicationID: applicationID,
		Reason:        req.Reason,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectReq struct {
	Reason string `json:"reason" validate:"required,min=1"`
}

func (h *AdminHandler) Reject(c echo.Context) error {
	applicationID, ok := h.applicationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application_id"})
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Reject(c.Request().Context(), middleware.ActorFrom(c), decision.RejectInput{
		ApplicationID: applicationID,
		Reason:        req.Reason,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type disburseReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *AdminHandler) Disburse(c echo.Context) error {
	applicationID, ok := h.applicationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application_id"})
	}
	var req disburseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Disburse(c.Request().Context(), middleware.ActorFrom(c), decision.DisburseInput{
		ApplicationID: applicationID,
		Amount:        req.Amount,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// ListApplications serves the review queue. ?status=submitted,under_review
// narrows it; no filter returns everything.
func (h *AdminHandler) ListApplications(c echo.Context) error {
	var statuses []domainApp.Status
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			st := domainApp.Status(strings.TrimSpace(s))
			switch st {
			case domainApp.StatusDraft, domainApp.StatusSubmitted, domainApp.StatusUnderReview,
				domainApp.StatusApproved, domainApp.StatusDisbursed, domainApp.StatusRejected,
				domainApp.StatusClosed:
				statuses = append(statuses, st)
			default:
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown status " + string(st)})
			}
		}
	}
	apps, err := h.uc.List(c.Request().Context(), middleware.ActorFrom(c), statuses...)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, apps)
}

func (h *AdminHandler) DashboardStats(c echo.Context) error {
	stats, err := h.uc.DashboardStats(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
