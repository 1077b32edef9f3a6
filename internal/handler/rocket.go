package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"spacemissions/internal/model"
	"spacemissions/internal/repository"
)

// RocketHandler bundles the repositories the rocket endpoints need.
type RocketHandler struct {
	Rockets  *repository.RocketRepo
	Missions *repository.MissionRepo
}

func NewRocketHandler(r *repository.RocketRepo, m *repository.MissionRepo) *RocketHandler {
	return &RocketHandler{Rockets: r, Missions: m}
}

// ----- DTOs -----

type rocketReq struct {
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type rocketResp struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func validateRocketReq(req rocketReq) string {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return "name is required"
	case utf8.RuneCountInString(req.Name) > 100:
		return "name must be at most 100 characters"
	}
	return ""
}

// List handles GET /v1/rockets. An optional name query parameter narrows the
// result to the rocket carrying that exact name, matched case-insensitively;
// an unknown name yields an empty list.
func (h *RocketHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if name := strings.TrimSpace(c.QueryParam("name")); name != "" {
		rk, err := h.Rockets.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrRocketNotFound) {
				return c.JSON(http.StatusOK, []rocketResp{})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return c.JSON(http.StatusOK, []rocketResp{{ID: rk.ID, Name: rk.Name, IsActive: rk.IsActive}})
	}

	rockets, err := h.Rockets.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]rocketResp, 0, len(rockets))
	for _, rk := range rockets {
		out = append(out, rocketResp{ID: rk.ID, Name: rk.Name, IsActive: rk.IsActive})
	}
	return c.JSON(http.StatusOK, out)
}

// GetByID handles GET /v1/rockets/:id.
func (h *RocketHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rk, err := h.Rockets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRocketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rocket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rocketResp{ID: rk.ID, Name: rk.Name, IsActive: rk.IsActive})
}

// Create handles POST /v1/rockets (authenticated). A case-insensitive name
// collision is a conflict.
func (h *RocketHandler) Create(c echo.Context) error {
	var req rocketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validateRocketReq(req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rk := model.Rocket{Name: strings.TrimSpace(req.Name), IsActive: req.IsActive}
	if err := h.Rockets.Create(ctx, &rk); err != nil {
		if errors.Is(err, repository.ErrRocketExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "rocket name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, rocketResp{ID: rk.ID, Name: rk.Name, IsActive: rk.IsActive})
}

// Update handles PUT /v1/rockets/:id (authenticated).
func (h *RocketHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req rocketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validateRocketReq(req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rk := model.Rocket{ID: id, Name: strings.TrimSpace(req.Name), IsActive: req.IsActive}
	if err := h.Rockets.Update(ctx, &rk); err != nil {
		switch {
		case errors.Is(err, repository.ErrRocketNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rocket not found"})
		case errors.Is(err, repository.ErrRocketExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "rocket name already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/rockets/:id (authenticated). Missions flown by
// the rocket survive with their rocket reference cleared.
func (h *RocketHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rockets.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRocketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rocket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMissions handles GET /v1/rockets/:id/missions: all missions flown by
// the rocket, ordered by launch time.
func (h *RocketHandler) ListMissions(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rk, err := h.Rockets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRocketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rocket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	missions, err := h.Missions.ListByRocket(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]missionResp, 0, len(missions))
	for _, m := range missions {
		out = append(out, missionResp{
			ID:             m.ID,
			Company:        m.Company,
			Location:       m.Location,
			LaunchDateTime: m.LaunchDateTime,
			MissionName:    m.MissionName,
			MissionStatus:  m.MissionStatus,
			Price:          m.Price,
			RocketID:       m.RocketID,
			RocketName:     rk.Name,
		})
	}
	return c.JSON(http.StatusOK, out)
}
