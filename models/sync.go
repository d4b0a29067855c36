package models

// SyncReport aggregates the outcome of one batch sync run. It exists
// only for the duration of the run and is returned to the caller.
type SyncReport struct {
	Created        int `json:"created"`
	Updated        int `json:"updated"`
	Failed         int `json:"failed"`
	TotalProcessed int `json:"total_processed"`
}
