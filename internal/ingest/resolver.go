package ingest

import (
	"context"
	"strings"

	"spacemissions/internal/model"
)

// RocketFinder is the storage read access the resolver needs: a
// case-insensitive lookup that reports absence as (nil, nil).
type RocketFinder interface {
	FindRocketByName(ctx context.Context, name string) (*model.Rocket, error)
}

// rocketResolver maps rocket names onto entities, deduplicating
// case-insensitively within one ingestion run and against storage. Each
// distinct name is looked up at most once per run; afterwards the in-batch
// map answers directly.
type rocketResolver struct {
	finder  RocketFinder
	byName  map[string]*model.Rocket // key: lower-cased name
	created []*model.Rocket          // not-yet-persisted entities, first-seen order
}

func newRocketResolver(finder RocketFinder) *rocketResolver {
	return &rocketResolver{
		finder: finder,
		byName: make(map[string]*model.Rocket),
	}
}

// resolve returns the rocket entity a candidate should attach to. On first
// encounter of a name the storage is consulted; an existing rocket is
// reused as-is (its stored activity state wins over the hint). Otherwise a
// new, not-yet-persisted entity is constructed once per distinct
// case-insensitive name, no matter how many records reference it.
func (r *rocketResolver) resolve(ctx context.Context, name string, active bool) (*model.Rocket, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if rk, ok := r.byName[key]; ok {
		return rk, nil
	}
	rk, err := r.finder.FindRocketByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if rk == nil {
		rk = &model.Rocket{Name: name, IsActive: active}
		r.created = append(r.created, rk)
	}
	r.byName[key] = rk
	return rk, nil
}

// newRockets returns the entities created during this run, in first-seen
// order. Their IDs are zero until the batch write assigns them.
func (r *rocketResolver) newRockets() []*model.Rocket {
	return r.created
}
