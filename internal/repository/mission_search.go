package repository

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrInvalidPagination is returned before any storage access when the
// requested page number or page size is below 1. Handlers should translate
// this into an HTTP 400 response.
var ErrInvalidPagination = errors.New("page number and page size must be greater than 0")

// MissionSearchQuery defines filters, sorting and pagination for searching
// missions. Zero values mean "no filter". All supplied filters are ANDed.
type MissionSearchQuery struct {
	Company       string     // substring match, case sensitivity per storage collation
	MissionStatus string     // exact match
	StartDate     *time.Time // inclusive lower bound on the UTC launch instant
	EndDate       *time.Time // inclusive upper bound on the UTC launch instant
	SortBy        string     // company | missionstatus | launchdatetime; anything else -> id
	SortDesc      bool
	Page          int // 1-based
	PageSize      int
}

// MissionListItem is one row of a mission search result. RocketName is the
// denormalized display name of the linked rocket, empty when the mission has
// no rocket reference.
type MissionListItem struct {
	ID             uint64    `json:"id"`
	Company        string    `json:"company"`
	MissionName    string    `json:"missionName"`
	RocketName     string    `json:"rocketName"`
	LaunchDateTime time.Time `json:"launchDateTime"`
	MissionStatus  string    `json:"missionStatus"`
}

// PageMeta describes the position of a page within the full result set.
type PageMeta struct {
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// MissionPage is a bounded, ordered slice of the mission collection plus
// its pagination metadata.
type MissionPage struct {
	PageMeta
	Items []MissionListItem `json:"items"`
}

// NewPageMeta computes pagination metadata for the given bounds.
// TotalPages is ceil(total/pageSize); a page beyond the data still yields
// correct metadata.
func NewPageMeta(page, pageSize, total int) PageMeta {
	totalPages := (total + pageSize - 1) / pageSize
	return PageMeta{
		PageNumber:      page,
		PageSize:        pageSize,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasPreviousPage: page > 1,
		HasNextPage:     page < totalPages,
	}
}

// sortColumn maps a caller-supplied sort field onto a column of the search
// query. Unrecognized or empty fields report ok=false and the caller falls
// back to ordering by id.
func sortColumn(field string) (string, bool) {
	switch strings.ToLower(field) {
	case "company":
		return "m.company", true
	case "missionstatus":
		return "m.mission_status", true
	case "launchdatetime":
		return "m.launch_datetime", true
	}
	return "", false
}

// orderClause builds the ORDER BY expression for a search. Every ordering
// ends on "m.id ASC" so the total order is deterministic even when the sort
// key has duplicates; offset pagination is undefined without a total order.
func orderClause(q MissionSearchQuery) string {
	col, ok := sortColumn(q.SortBy)
	if !ok {
		return "ORDER BY m.id ASC"
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	return "ORDER BY " + col + " " + dir + ", m.id ASC"
}

// searchPredicates translates the query's filters into a WHERE condition and
// its placeholder arguments. Supplied filters are ANDed so a row must satisfy
// every one of them; with no filters the condition matches everything.
func searchPredicates(q MissionSearchQuery) (string, []any) {
	where := []string{}
	args := []any{}

	if q.Company != "" {
		where = append(where, "m.company LIKE ?")
		args = append(args, "%"+q.Company+"%")
	}
	if q.MissionStatus != "" {
		where = append(where, "m.mission_status = ?")
		args = append(args, q.MissionStatus)
	}
	if q.StartDate != nil {
		where = append(where, "m.launch_datetime >= ?")
		args = append(args, q.StartDate.UTC())
	}
	if q.EndDate != nil {
		where = append(where, "m.launch_datetime <= ?")
		args = append(args, q.EndDate.UTC())
	}

	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

// Search applies the query's filters, sort and pagination to the mission
// collection and returns one page plus metadata. Pagination bounds are
// validated before any storage access.
func (r *MissionRepo) Search(ctx context.Context, q MissionSearchQuery) (*MissionPage, error) {
	if q.Page < 1 || q.PageSize < 1 {
		return nil, ErrInvalidPagination
	}

	cond, args := searchPredicates(q)

	var total int
	countSQL := "SELECT COUNT(*) FROM missions m WHERE " + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			m.id,
			m.company,
			m.mission_name,
			COALESCE(r.name, '') AS rocket_name,
			m.launch_datetime,
			m.mission_status
		FROM missions m
		LEFT JOIN rockets r ON r.id = m.rocket_id
		WHERE ` + cond + `
		` + orderClause(q) + `
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]MissionListItem, 0, limit)
	for rows.Next() {
		var (
			it     MissionListItem
			launch time.Time
		)
		if err := rows.Scan(&it.ID, &it.Company, &it.MissionName, &it.RocketName, &launch, &it.MissionStatus); err != nil {
			return nil, err
		}
		it.LaunchDateTime = launch.UTC()
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &MissionPage{PageMeta: NewPageMeta(q.Page, q.PageSize, total), Items: items}, nil
}
