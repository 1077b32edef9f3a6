package queue

// ImportCompletedEvent is published when a CSV ingestion run finishes
// successfully. It carries enough information for downstream consumers to
// log or trigger analytics without querying the primary database.
type ImportCompletedEvent struct {
	Source        string `json:"source"`
	RocketsAdded  int    `json:"rockets_added"`
	MissionsAdded int    `json:"missions_added"`
	Skipped       int    `json:"skipped"`
	CompletedAt   string `json:"completed_at"`
}
