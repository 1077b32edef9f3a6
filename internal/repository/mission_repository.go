package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"spacemissions/internal/model"
)

// MissionRepo manages persistence for missions.
type MissionRepo struct {
	db *sql.DB
}

// NewMissionRepo constructs a MissionRepo with the given DB handle.
func NewMissionRepo(db *sql.DB) *MissionRepo {
	return &MissionRepo{db: db}
}

// MissionDetail is a mission joined with the display name of its rocket.
// RocketName is empty when the mission has no rocket reference.
type MissionDetail struct {
	model.Mission
	RocketName string
}

// scanMission maps the nullable price and rocket columns onto the pointer
// fields of the model.
func scanMission(m *model.Mission, price sql.NullFloat64, rocketID sql.NullInt64) {
	if price.Valid {
		v := price.Float64
		m.Price = &v
	}
	if rocketID.Valid {
		v := uint64(rocketID.Int64)
		m.RocketID = &v
	}
}

// Create inserts a new mission and assigns the generated ID back to the
// struct. LaunchDateTime must already be a UTC instant.
func (r *MissionRepo) Create(ctx context.Context, m *model.Mission) error {
	const q = `INSERT INTO missions (company, location, launch_datetime, mission_name, mission_status, price, rocket_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		m.Company, m.Location, m.LaunchDateTime.UTC(), m.MissionName, m.MissionStatus, m.Price, m.RocketID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID retrieves a mission with its rocket display name. It returns
// ErrMissionNotFound if there is no matching row. Missions without a rocket
// reference come back with an empty RocketName.
func (r *MissionRepo) GetByID(ctx context.Context, id uint64) (*MissionDetail, error) {
	const q = `SELECT m.id, m.company, m.location, m.launch_datetime, m.mission_name, m.mission_status,
	                  m.price, m.rocket_id, COALESCE(r.name, '')
	           FROM missions m
	           LEFT JOIN rockets r ON r.id = m.rocket_id
	           WHERE m.id = ?`
	var (
		d        MissionDetail
		launch   time.Time
		price    sql.NullFloat64
		rocketID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Company, &d.Location, &launch, &d.MissionName, &d.MissionStatus,
		&price, &rocketID, &d.RocketName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMissionNotFound
		}
		return nil, err
	}
	d.LaunchDateTime = launch.UTC()
	scanMission(&d.Mission, price, rocketID)
	return &d, nil
}

// ListByRocket returns all missions flown by the given rocket ordered by
// launch time ascending. When no missions exist it returns an empty slice
// and nil error.
func (r *MissionRepo) ListByRocket(ctx context.Context, rocketID uint64) ([]*model.Mission, error) {
	const q = `SELECT id, company, location, launch_datetime, mission_name, mission_status, price, rocket_id
	           FROM missions WHERE rocket_id = ? ORDER BY launch_datetime ASC`
	rows, err := r.db.QueryContext(ctx, q, rocketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Mission
	for rows.Next() {
		var (
			m      model.Mission
			launch time.Time
			price  sql.NullFloat64
			rid    sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.Company, &m.Location, &launch, &m.MissionName,
			&m.MissionStatus, &price, &rid); err != nil {
			return nil, err
		}
		m.LaunchDateTime = launch.UTC()
		scanMission(&m, price, rid)
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites all mutable fields of a mission. The write is optimistic:
// it assumes the row still exists and reports ErrMissionNotFound when it has
// vanished between read and write. Identical values are treated as success.
func (r *MissionRepo) Update(ctx context.Context, m *model.Mission) error {
	const q = `UPDATE missions
	           SET company = ?, location = ?, launch_datetime = ?, mission_name = ?,
	               mission_status = ?, price = ?, rocket_id = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		m.Company, m.Location, m.LaunchDateTime.UTC(), m.MissionName,
		m.MissionStatus, m.Price, m.RocketID, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	err = r.db.QueryRowContext(ctx, "SELECT 1 FROM missions WHERE id = ? LIMIT 1", m.ID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMissionNotFound
	}
	return err
}

// Delete removes a mission by id. The rocket it references is never
// affected. Returns ErrMissionNotFound when no row was deleted.
func (r *MissionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM missions WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMissionNotFound
	}
	return nil
}
