package ingest

import (
	"context"
	"errors"
	"log"

	"spacemissions/internal/model"
)

// Store is the storage the importer depends on: rocket lookup for
// deduplication plus an atomic batch write of new rockets and missions.
type Store interface {
	RocketFinder
	// SaveBatch persists newRockets and missions in one transaction.
	// Mission RocketID fields may alias the ID field of a rocket in
	// newRockets, so rockets must be written first.
	SaveBatch(ctx context.Context, newRockets []*model.Rocket, missions []*model.Mission) error
}

// Result summarizes one ingestion run.
type Result struct {
	RocketsAdded  int `json:"rocketsAdded"`
	MissionsAdded int `json:"missionsAdded"`
	Skipped       int `json:"skipped"`
}

// Importer orchestrates the ingestion pipeline over a full record set:
// normalize every record independently, resolve each accepted candidate's
// rocket, then write everything in a single atomic batch. A rejected record
// is logged and skipped; the run continues with the remaining records.
type Importer struct {
	store Store
}

func NewImporter(store Store) *Importer {
	return &Importer{store: store}
}

// Run consumes an already-materialized record sequence and returns counts
// of rockets and missions added. The write is all-or-nothing: if it fails,
// no rocket or mission from this run is retained.
func (im *Importer) Run(ctx context.Context, records []RawRecord) (Result, error) {
	log.Printf("import: loaded %d records", len(records))

	resolver := newRocketResolver(im.store)
	missions := make([]*model.Mission, 0, len(records))
	skipped := 0

	for i, rec := range records {
		cand, err := Normalize(rec)
		if err != nil {
			var rej *RejectError
			if errors.As(err, &rej) {
				log.Printf("import: skipping record %d (mission %q): %s", i+1, rec.Mission, rej.Reason)
				skipped++
				continue
			}
			return Result{}, err
		}

		rocket, err := resolver.resolve(ctx, cand.RocketName, cand.RocketActive)
		if err != nil {
			return Result{}, err
		}

		missions = append(missions, &model.Mission{
			Company:        cand.Company,
			Location:       cand.Location,
			LaunchDateTime: cand.LaunchDateTime,
			MissionName:    cand.MissionName,
			MissionStatus:  cand.MissionStatus,
			Price:          cand.Price,
			RocketID:       &rocket.ID,
		})
	}

	newRockets := resolver.newRockets()
	if err := im.store.SaveBatch(ctx, newRockets, missions); err != nil {
		return Result{}, err
	}

	res := Result{RocketsAdded: len(newRockets), MissionsAdded: len(missions), Skipped: skipped}
	log.Printf("import: added %d rockets, %d missions, skipped %d records",
		res.RocketsAdded, res.MissionsAdded, res.Skipped)
	return res, nil
}
