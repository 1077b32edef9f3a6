package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchCtx(t *testing.T, rawQuery string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/missions?"+rawQuery, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParseSearchQueryDefaults(t *testing.T) {
	q, err := parseSearchQuery(searchCtx(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)
	assert.Empty(t, q.Company)
	assert.Empty(t, q.SortBy)
	assert.False(t, q.SortDesc)
	assert.Nil(t, q.StartDate)
	assert.Nil(t, q.EndDate)
}

func TestParseSearchQueryFull(t *testing.T) {
	q, err := parseSearchQuery(searchCtx(t,
		"company=SpaceX&missionStatus=Success&sortBy=launchDateTime&sortDescending=true&pageNumber=3&pageSize=25&startDate=2020-01-01&endDate=2020-12-31T23:59:59Z"))
	require.NoError(t, err)

	assert.Equal(t, "SpaceX", q.Company)
	assert.Equal(t, "Success", q.MissionStatus)
	assert.Equal(t, "launchDateTime", q.SortBy)
	assert.True(t, q.SortDesc)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.PageSize)

	require.NotNil(t, q.StartDate)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), *q.StartDate)
	require.NotNil(t, q.EndDate)
	assert.Equal(t, time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC), *q.EndDate)
}

func TestParseSearchQueryRejectsMalformedValues(t *testing.T) {
	for _, raw := range []string{
		"pageNumber=abc",
		"pageSize=ten",
		"startDate=yesterday",
		"endDate=31-12-2020",
	} {
		_, err := parseSearchQuery(searchCtx(t, raw))
		assert.Error(t, err, "query %q", raw)
	}
}

func TestParseSearchQueryKeepsOutOfRangePagesForStorage(t *testing.T) {
	// Bounds below 1 parse fine here; the storage layer rejects them so the
	// rule lives in one place.
	q, err := parseSearchQuery(searchCtx(t, "pageNumber=0&pageSize=-5"))
	require.NoError(t, err)
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, -5, q.PageSize)
}

func TestParseDateParam(t *testing.T) {
	got, err := parseDateParam("2021-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDateParam("2021-06-15T08:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 6, 15, 6, 30, 0, 0, time.UTC), got)

	_, err = parseDateParam("June 15th")
	assert.Error(t, err)
}

func TestValidateMissionReq(t *testing.T) {
	valid := missionReq{
		Company:        "SpaceX",
		Location:       "LC-39A, KSC, Florida, USA",
		LaunchDateTime: time.Date(2020, 1, 7, 2, 19, 0, 0, time.UTC),
		MissionName:    "Starlink-2",
		MissionStatus:  "Success",
	}
	assert.Empty(t, validateMissionReq(valid))

	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	tests := []struct {
		name   string
		mutate func(*missionReq)
	}{
		{"blank mission name", func(r *missionReq) { r.MissionName = "  " }},
		{"mission name too long", func(r *missionReq) { r.MissionName = long(201) }},
		{"company too long", func(r *missionReq) { r.Company = long(101) }},
		{"location too long", func(r *missionReq) { r.Location = long(201) }},
		{"status too long", func(r *missionReq) { r.MissionStatus = long(51) }},
		{"zero launch time", func(r *missionReq) { r.LaunchDateTime = time.Time{} }},
		{"negative price", func(r *missionReq) { p := -1.0; r.Price = &p }},
		{"price over ceiling", func(r *missionReq) { p := 1_000_001.0; r.Price = &p }},
		{"price with three fractional digits", func(r *missionReq) { p := 62.505; r.Price = &p }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.NotEmpty(t, validateMissionReq(req))
		})
	}

	t.Run("length limits count characters, not bytes", func(t *testing.T) {
		req := valid
		req.Company = strings.Repeat("é", 100) // 200 bytes, 100 characters
		assert.Empty(t, validateMissionReq(req))
		req.Company = strings.Repeat("é", 101)
		assert.NotEmpty(t, validateMissionReq(req))
	})
	t.Run("two fractional digits are fine", func(t *testing.T) {
		req := valid
		p := 62.55
		req.Price = &p
		assert.Empty(t, validateMissionReq(req))
	})
	t.Run("nil price is fine", func(t *testing.T) {
		assert.Empty(t, validateMissionReq(valid))
	})
}
