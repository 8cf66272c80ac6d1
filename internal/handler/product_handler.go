package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"ketotrack/internal/service"
)

// ProductHandler handles product entry CRUD on the data surface.
type ProductHandler struct {
	svc service.ProductService
}

// NewProductHandler creates a product handler.
func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// CreateProductRequest logs a food item. Date defaults to today.
type CreateProductRequest struct {
	Name  string `json:"name" validate:"required"`
	Grams uint   `json:"grams" validate:"required,gt=0"`
	Date  string `json:"date"`
}

// UpdateProductRequest changes an entry's weight; macros are re-fetched.
type UpdateProductRequest struct {
	Grams uint `json:"grams" validate:"required,gt=0"`
}

// CreateProduct godoc
// @Summary Log a product entry
// @Description Fetches macros from the nutrition API for the given name and grams.
// @Tags products
// @Accept json
// @Produce json
// @Security APIToken
// @Param product body CreateProductRequest true "Product payload"
// @Success 201 {object} model.ProductEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /v1/products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return err
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date := time.Now().UTC()
	if req.Date != "" {
		if date, err = parseDate(req.Date); err != nil {
			return respondError(c, err)
		}
	}

	entry, err := h.svc.Create(c.Request().Context(), pid, req.Name, req.Grams, date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// ListProducts godoc
// @Summary List product entries
// @Description Optional filters: ?date=YYYY-MM-DD, ?name=<exact name>.
// @Tags products
// @Produce json
// @Security APIToken
// @Param date query string false "Filter by date"
// @Param name query string false "Filter by product name"
// @Success 200 {array} model.ProductEntry
// @Router /v1/products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if dateParam := c.QueryParam("date"); dateParam != "" {
		date, err := parseDate(dateParam)
		if err != nil {
			return respondError(c, err)
		}
		entries, err := h.svc.ListByDate(ctx, pid, date)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, entries)
	}

	entries, err := h.svc.List(ctx, pid, c.QueryParam("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// GetProduct godoc
// @Summary Get one product entry
// @Tags products
// @Produce json
// @Security APIToken
// @Param id path int true "Entry ID"
// @Success 200 {object} model.ProductEntry
// @Failure 404 {object} errors.ErrorResponse
// @Router /v1/products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	entry, err := h.svc.Get(c.Request().Context(), pid, uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

// UpdateProduct godoc
// @Summary Update an entry's weight
// @Tags products
// @Accept json
// @Produce json
// @Security APIToken
// @Param id path int true "Entry ID"
// @Param product body UpdateProductRequest true "New weight"
// @Success 200 {object} model.ProductEntry
// @Failure 404 {object} errors.ErrorResponse
// @Router /v1/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.svc.UpdateGrams(c.Request().Context(), pid, uint(id), req.Grams)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

// DeleteProduct godoc
// @Summary Delete a product entry
// @Tags products
// @Produce json
// @Security APIToken
// @Param id path int true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.ErrorResponse
// @Router /v1/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.Delete(c.Request().Context(), pid, uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
