package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"spacemissions/internal/model"
	"spacemissions/internal/repository"
)

// MissionHandler bundles the repositories the mission endpoints need.
type MissionHandler struct {
	Missions *repository.MissionRepo
	Rockets  *repository.RocketRepo
}

func NewMissionHandler(m *repository.MissionRepo, r *repository.RocketRepo) *MissionHandler {
	return &MissionHandler{Missions: m, Rockets: r}
}

// ----- DTOs -----

type missionReq struct {
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	LaunchDateTime time.Time `json:"launchDateTime"`
	MissionName    string    `json:"missionName"`
	MissionStatus  string    `json:"missionStatus"`
	Price          *float64  `json:"price"`
	RocketID       *uint64   `json:"rocketId"`
}

type missionResp struct {
	ID             uint64    `json:"id"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	LaunchDateTime time.Time `json:"launchDateTime"`
	MissionName    string    `json:"missionName"`
	MissionStatus  string    `json:"missionStatus"`
	Price          *float64  `json:"price"`
	RocketID       *uint64   `json:"rocketId"`
	RocketName     string    `json:"rocketName"`
}

func missionToResp(d *repository.MissionDetail) missionResp {
	return missionResp{
		ID:             d.ID,
		Company:        d.Company,
		Location:       d.Location,
		LaunchDateTime: d.LaunchDateTime,
		MissionName:    d.MissionName,
		MissionStatus:  d.MissionStatus,
		Price:          d.Price,
		RocketID:       d.RocketID,
		RocketName:     d.RocketName,
	}
}

// maxPrice is the API-boundary price ceiling in millions of USD. Storage
// itself does not constrain the value.
const maxPrice = 1_000_000

// validateMissionReq applies the API-boundary field rules. It returns a
// human-readable message for the first violation found, or "". Length limits
// count runes, matching the VARCHAR character limits of the schema.
func validateMissionReq(req missionReq) string {
	switch {
	case strings.TrimSpace(req.MissionName) == "":
		return "missionName is required"
	case utf8.RuneCountInString(req.MissionName) > 200:
		return "missionName must be at most 200 characters"
	case utf8.RuneCountInString(req.Company) > 100:
		return "company must be at most 100 characters"
	case utf8.RuneCountInString(req.Location) > 200:
		return "location must be at most 200 characters"
	case utf8.RuneCountInString(req.MissionStatus) > 50:
		return "missionStatus must be at most 50 characters"
	case req.LaunchDateTime.IsZero():
		return "launchDateTime is required"
	}
	if req.Price != nil {
		p := *req.Price
		if p < 0 || p > maxPrice {
			return "price must be between 0 and 1000000"
		}
		if math.Abs(p*100-math.Round(p*100)) > 1e-9 {
			return "price must have at most 2 fractional digits"
		}
	}
	return ""
}

// parseSearchQuery extracts the filter, sort and pagination parameters from
// the request. Pagination defaults to page 1 / size 10; malformed numeric
// values are rejected. Caller-supplied date bounds are coerced to UTC.
func parseSearchQuery(c echo.Context) (repository.MissionSearchQuery, error) {
	q := repository.MissionSearchQuery{
		Company:       c.QueryParam("company"),
		MissionStatus: c.QueryParam("missionStatus"),
		SortBy:        c.QueryParam("sortBy"),
		Page:          1,
		PageSize:      10,
	}
	if v := c.QueryParam("sortDescending"); v != "" {
		q.SortDesc = v == "true" || v == "1"
	}
	if v := c.QueryParam("pageNumber"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, errors.New("pageNumber must be an integer")
		}
		q.Page = n
	}
	if v := c.QueryParam("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, errors.New("pageSize must be an integer")
		}
		q.PageSize = n
	}
	for name, dst := range map[string]**time.Time{"startDate": &q.StartDate, "endDate": &q.EndDate} {
		v := c.QueryParam(name)
		if v == "" {
			continue
		}
		t, err := parseDateParam(v)
		if err != nil {
			return q, errors.New(name + " must be an ISO-8601 date or datetime")
		}
		*dst = &t
	}
	return q, nil
}

// parseDateParam accepts a plain date or an RFC3339 instant and returns it
// as UTC.
func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// List handles GET /v1/missions: filtered, sorted, paginated mission
// summaries. Invalid pagination bounds are rejected before any storage
// access.
func (h *MissionHandler) List(c echo.Context) error {
	q, err := parseSearchQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page, err := h.Missions.Search(ctx, q)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidPagination) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, page)
}

// GetByID handles GET /v1/missions/:id.
func (h *MissionHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Missions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMissionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mission not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, missionToResp(d))
}

// Create handles POST /v1/missions (authenticated). The mission must
// reference an existing rocket.
func (h *MissionHandler) Create(c echo.Context) error {
	var req missionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validateMissionReq(req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if req.RocketID == nil || *req.RocketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rocketId must be provided and greater than zero"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rocket, err := h.Rockets.GetByID(ctx, *req.RocketID)
	if err != nil {
		if errors.Is(err, repository.ErrRocketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rocket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	m := model.Mission{
		Company:        req.Company,
		Location:       req.Location,
		LaunchDateTime: req.LaunchDateTime.UTC(),
		MissionName:    req.MissionName,
		MissionStatus:  req.MissionStatus,
		Price:          req.Price,
		RocketID:       req.RocketID,
	}
	if err := h.Missions.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}

	return c.JSON(http.StatusCreated, missionResp{
		ID:             m.ID,
		Company:        m.Company,
		Location:       m.Location,
		LaunchDateTime: m.LaunchDateTime,
		MissionName:    m.MissionName,
		MissionStatus:  m.MissionStatus,
		Price:          m.Price,
		RocketID:       m.RocketID,
		RocketName:     rocket.Name,
	})
}

// Update handles PUT /v1/missions/:id (authenticated). The write is
// optimistic: a mission deleted between read and write reports not found.
func (h *MissionHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req missionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validateMissionReq(req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.RocketID != nil && *req.RocketID != 0 {
		if _, err := h.Rockets.GetByID(ctx, *req.RocketID); err != nil {
			if errors.Is(err, repository.ErrRocketNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "rocket not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}

	m := model.Mission{
		ID:             id,
		Company:        req.Company,
		Location:       req.Location,
		LaunchDateTime: req.LaunchDateTime.UTC(),
		MissionName:    req.MissionName,
		MissionStatus:  req.MissionStatus,
		Price:          req.Price,
		RocketID:       req.RocketID,
	}
	if err := h.Missions.Update(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrMissionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mission not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/missions/:id (authenticated). The rocket the
// mission references is never affected.
func (h *MissionHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Missions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMissionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mission not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetRocket handles GET /v1/missions/:id/rocket: the rocket that flew the
// mission. A mission without a rocket reference reports not found.
func (h *MissionHandler) GetRocket(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Missions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMissionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mission not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if d.RocketID == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "mission has no rocket"})
	}
	rocket, err := h.Rockets.GetByID(ctx, *d.RocketID)
	if err != nil {
		if errors.Is(err, repository.ErrRocketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rocket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rocketResp{ID: rocket.ID, Name: rocket.Name, IsActive: rocket.IsActive})
}
