package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ketotrack/internal/service"
)

// ProfileHandler handles the account-surface profile endpoints.
type ProfileHandler struct {
	svc service.ProfileService
}

// NewProfileHandler creates a profile handler.
func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// UpdateProfileRequest carries the editable physical attributes.
type UpdateProfileRequest struct {
	WeightKg uint   `json:"weight_kg" validate:"required,gt=0"`
	HeightCm uint   `json:"height_cm" validate:"required,gt=0"`
	Age      uint   `json:"age" validate:"required,gt=0"`
	Sex      string `json:"sex" validate:"required,oneof=male female"`
	Activity string `json:"activity" validate:"required,oneof=inactive low medium high very_high"`
}

// GetProfile godoc
// @Summary Get the caller's nutrition profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := jwtUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.svc.GetByUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update physical attributes and recompute the daily requirement
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Profile attributes"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := jwtUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.svc.Update(c.Request().Context(), userID, service.ProfileUpdate{
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
		Age:      req.Age,
		Sex:      req.Sex,
		Activity: req.Activity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetDemand godoc
// @Summary Get the caller's computed daily requirement
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/demand [get]
func (h *ProfileHandler) GetDemand(c echo.Context) error {
	userID, err := jwtUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.svc.GetByUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"kcal":    profile.DailyKcal,
		"carbs":   profile.CarbsG,
		"fat":     profile.FatG,
		"protein": profile.ProteinG,
	})
}
