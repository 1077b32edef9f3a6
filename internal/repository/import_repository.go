package repository

import (
	"context"
	"database/sql"
	"errors"

	"spacemissions/internal/model"
)

// ImportRepo is the storage side of the CSV ingestion pipeline. It offers
// the two operations the importer needs: a case-insensitive rocket lookup
// and an all-or-nothing batch write of new rockets plus new missions.
type ImportRepo struct {
	db *sql.DB
}

// NewImportRepo constructs an ImportRepo with the given DB handle.
func NewImportRepo(db *sql.DB) *ImportRepo {
	return &ImportRepo{db: db}
}

// FindRocketByName looks up a rocket by case-insensitive name. Unlike
// RocketRepo.GetByName it reports absence as (nil, nil) because "not there
// yet" is the normal case during ingestion, not a failure.
func (r *ImportRepo) FindRocketByName(ctx context.Context, name string) (*model.Rocket, error) {
	const q = "SELECT id, name, is_active FROM rockets WHERE LOWER(name) = LOWER(?) LIMIT 1"
	var rk model.Rocket
	err := r.db.QueryRowContext(ctx, q, name).Scan(&rk.ID, &rk.Name, &rk.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rk, nil
}

// SaveBatch persists the outcome of one ingestion run inside a single
// transaction: new rockets first, then the missions referencing them. If
// anything fails the transaction rolls back and nothing from the run is
// retained — a persistence failure after rocket creation must not leave
// orphaned rockets behind.
//
// A mission's RocketID may alias the ID field of a rocket in newRockets;
// the rocket inserts run first precisely so those IDs are assigned before
// the missions are written. A concurrent import racing on the same rocket
// name is rejected here by the unique index and surfaced as ErrRocketExists.
func (r *ImportRepo) SaveBatch(ctx context.Context, newRockets []*model.Rocket, missions []*model.Mission) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	const qRocket = "INSERT INTO rockets (name, is_active) VALUES (?, ?)"
	for _, rk := range newRockets {
		var res sql.Result
		res, err = tx.ExecContext(ctx, qRocket, rk.Name, rk.IsActive)
		if err != nil {
			if isDuplicateKey(err) {
				err = ErrRocketExists
			}
			return err
		}
		var id int64
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		rk.ID = uint64(id)
	}

	const qMission = `INSERT INTO missions (company, location, launch_datetime, mission_name, mission_status, price, rocket_id)
	                  VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, m := range missions {
		if _, err = tx.ExecContext(ctx, qMission,
			m.Company, m.Location, m.LaunchDateTime.UTC(), m.MissionName,
			m.MissionStatus, m.Price, m.RocketID); err != nil {
			return err
		}
	}
	return nil
}
