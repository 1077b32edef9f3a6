package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Source supplies the raw records for one ingestion run. The importer is
// ignorant of where records come from; a file on disk is just one adapter.
type Source interface {
	Fetch(ctx context.Context) ([]RawRecord, error)
}

// FileSource reads raw records from a CSV file on disk.
type FileSource struct {
	Path string
}

// Fetch opens the file and materializes all records.
func (s FileSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// ReadRecords parses CSV data whose header row names the nine source
// columns: Company, Location, Date, Time, Rocket, Mission, RocketStatus,
// Price, MissionStatus. Header matching is case-insensitive and column
// order is free. Missing columns leave the corresponding field empty, so a
// structurally incomplete file still parses; blank required fields are
// rejected later, per record, by Normalize.
func ReadRecords(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows tolerated, missing cells read as ""

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var out []RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		out = append(out, RawRecord{
			Company:       field(row, "company"),
			Location:      field(row, "location"),
			Date:          field(row, "date"),
			Time:          field(row, "time"),
			Rocket:        field(row, "rocket"),
			Mission:       field(row, "mission"),
			RocketStatus:  field(row, "rocketstatus"),
			Price:         field(row, "price"),
			MissionStatus: field(row, "missionstatus"),
		})
	}
	return out, nil
}
