package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wezacredit-backend/internal/adapter/middleware"
	"wezacredit-backend/internal/usecase/profile"
)

type ProfileHandler struct{ uc *profile.Usecase }

func NewProfileHandler(uc *profile.Usecase) *ProfileHandler { return &ProfileHandler{uc: uc} }

func (h *ProfileHandler) GetMe(c echo.Context) error {
	dto, err := h.uc.GetMe(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type upsertProfileReq struct {
	FirstName  string `json:"first_name"  validate:"required,min=1"`
	LastName   string `json:"last_name"   validate:"required,min=1"`
	Phone      string `json:"phone"       validate:"omitempty,e164"`
	NationalID string `json:"national_id"`
}

func (h *ProfileHandler) UpsertMe(c echo.Context) error {
	var req upsertProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.UpsertMe(c.Request().Context(), middleware.ActorFrom(c), profile.UpsertInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		NationalID: req.NationalID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
