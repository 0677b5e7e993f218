package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/boy52hz/OASIP-US-3-V2/internal/middleware"
	"github.com/boy52hz/OASIP-US-3-V2/internal/model"
	"github.com/boy52hz/OASIP-US-3-V2/internal/repository"
)

// CategoryHandler bundles dependencies for the category endpoints.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

// ----- DTOs -----

type categoryResp struct {
	ID            int     `json:"id"`
	Name          string  `json:"eventCategoryName"`
	Description   *string `json:"eventCategoryDescription"`
	EventDuration int     `json:"eventDuration"`
}

func toCategoryResp(c *model.EventCategory) categoryResp {
	return categoryResp{ID: c.ID, Name: c.Name, Description: c.Description, EventDuration: c.DurationMin}
}

type updateCategoryReq struct {
	Name        *string `json:"eventCategoryName"`
	Description *string `json:"eventCategoryDescription"`
	Duration    *int    `json:"eventDuration"`
}

// List returns every category.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.ListAll(ctx)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]categoryResp, 0, len(cats))
	for i := range cats {
		out = append(out, toCategoryResp(&cats[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// ListOwned returns the categories the authenticated lecturer owns.
func (h *CategoryHandler) ListOwned(c echo.Context) error {
	p := middleware.Principal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.ListByOwnerEmail(ctx, p.Email)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]categoryResp, 0, len(cats))
	for i := range cats {
		out = append(out, toCategoryResp(&cats[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Update edits a category. Name stays unique, duration stays positive, and
// a body that changes nothing is rejected.
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be an integer"})
	}
	var req updateCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == nil && req.Description == nil && req.Duration == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one field is required"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventCategoryName must not be blank"})
	}
	if req.Duration != nil && *req.Duration <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventDuration must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.Update(ctx, id, repository.UpdateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.Duration,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResp(cat))
}
