package dto

// ReconciliationReport summarizes one full write-store → read-store resync.
// The job never partial-aborts: per-item failures are counted, not fatal.
type ReconciliationReport struct {
	Total  int `json:"total"`
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}
