package handler

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"spacemissions/internal/ingest"
	"spacemissions/internal/queue"
	"spacemissions/internal/repository"
	queue_publisher "spacemissions/internal/service"
)

// ImportHandler runs the CSV ingestion pipeline on request.
type ImportHandler struct {
	Source   ingest.Source
	Importer *ingest.Importer
	CSVPath  string // reported in the import.completed event
}

func NewImportHandler(source ingest.Source, importer *ingest.Importer, csvPath string) *ImportHandler {
	return &ImportHandler{Source: source, Importer: importer, CSVPath: csvPath}
}

// Run handles POST /v1/import (authenticated). It fetches the raw record
// set, runs the pipeline and reports the counts. The batch write is
// all-or-nothing; a concurrent import racing on the same rocket name loses
// against the unique index and surfaces as a conflict. A successful run
// publishes an import.completed event; publish failures are logged but do
// not fail the request.
func (h *ImportHandler) Run(c echo.Context) error {
	// Bulk runs take longer than the regular 5s request budget.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	records, err := h.Source.Fetch(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "csv file not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reading records failed: " + err.Error()})
	}

	result, err := h.Importer.Run(ctx, records)
	if err != nil {
		if errors.Is(err, repository.ErrRocketExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "concurrent import created a conflicting rocket"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "import failed"})
	}

	ev := queue.ImportCompletedEvent{
		Source:        h.CSVPath,
		RocketsAdded:  result.RocketsAdded,
		MissionsAdded: result.MissionsAdded,
		Skipped:       result.Skipped,
		CompletedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishImportCompleted(ctx, ev); err != nil {
		log.Printf("import: publishing completion event failed: %v", err)
	}

	return c.JSON(http.StatusOK, result)
}
