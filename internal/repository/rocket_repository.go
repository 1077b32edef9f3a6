// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for rockets. Rocket names are unique
// case-insensitively; the schema enforces this with a unique index over the
// case-insensitive default collation, and lookups use LOWER() comparisons so
// the intent survives a collation change.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"spacemissions/internal/model"
)

// RocketRepo encapsulates all database queries related to rockets. It
// depends on a sql.DB connection which is configured at startup.
type RocketRepo struct {
	db *sql.DB
}

// NewRocketRepo constructs a RocketRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewRocketRepo(db *sql.DB) *RocketRepo {
	return &RocketRepo{db: db}
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error (1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// Create inserts a new rocket. On success the rocket's ID field is populated
// with the auto-generated value. A name collision with an existing rocket
// (case-insensitive) returns ErrRocketExists.
func (r *RocketRepo) Create(ctx context.Context, rk *model.Rocket) error {
	const q = "INSERT INTO rockets (name, is_active) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, q, rk.Name, rk.IsActive)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrRocketExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rk.ID = uint64(id)
	return nil
}

// GetByID fetches a rocket by its ID. It returns ErrRocketNotFound if no
// row is found.
func (r *RocketRepo) GetByID(ctx context.Context, id uint64) (*model.Rocket, error) {
	const q = "SELECT id, name, is_active FROM rockets WHERE id = ?"
	var rk model.Rocket
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&rk.ID, &rk.Name, &rk.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRocketNotFound
		}
		return nil, err
	}
	return &rk, nil
}

// GetByName fetches a rocket by name using a case-insensitive match, so
// "Falcon 9" and "falcon 9" resolve to the same row. Returns
// ErrRocketNotFound when no rocket carries the name.
func (r *RocketRepo) GetByName(ctx context.Context, name string) (*model.Rocket, error) {
	const q = "SELECT id, name, is_active FROM rockets WHERE LOWER(name) = LOWER(?) LIMIT 1"
	var rk model.Rocket
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&rk.ID, &rk.Name, &rk.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRocketNotFound
		}
		return nil, err
	}
	return &rk, nil
}

// List returns all rockets ordered by id.
func (r *RocketRepo) List(ctx context.Context) ([]*model.Rocket, error) {
	const q = "SELECT id, name, is_active FROM rockets ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Rocket
	for rows.Next() {
		rk := new(model.Rocket)
		if err := rows.Scan(&rk.ID, &rk.Name, &rk.IsActive); err != nil {
			return nil, err
		}
		out = append(out, rk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a rocket's name and activity flag. It returns
// ErrRocketNotFound when the row no longer exists and ErrRocketExists when
// the new name collides with another rocket. A no-op update (identical
// values) is treated as success.
func (r *RocketRepo) Update(ctx context.Context, rk *model.Rocket) error {
	const q = "UPDATE rockets SET name = ?, is_active = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, rk.Name, rk.IsActive, rk.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrRocketExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows affected: either the rocket vanished or nothing changed.
	var one int
	err = r.db.QueryRowContext(ctx, "SELECT 1 FROM rockets WHERE id = ? LIMIT 1", rk.ID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRocketNotFound
	}
	return err
}

// Delete removes a rocket. Missions referencing it survive with their
// rocket reference cleared; the FK update and the delete happen in one
// transaction so no mission ever points at a missing rocket. Returns
// ErrRocketNotFound when the rocket does not exist.
func (r *RocketRepo) Delete(ctx context.Context, id uint64) error {
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

	var one int
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM rockets WHERE id = ? LIMIT 1", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRocketNotFound
		}
		return err
	}
	// Orphan the missions rather than deleting them: a rocket delete must
	// never cascade into the mission aggregate.
	if _, err = tx.ExecContext(ctx, "UPDATE missions SET rocket_id = NULL WHERE rocket_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM rockets WHERE id = ?", id); err != nil {
		return err
	}
	return nil
}
