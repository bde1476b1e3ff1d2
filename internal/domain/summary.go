package domain

// RunSummary is the outcome of one reconciliation run. Returned to the
// caller and embedded in the success notification. Transient.
type RunSummary struct {
	StartDate         string // window start, YYYY-MM-DD
	EndDate           string // window end, YYYY-MM-DD
	TransactionsFound int    // raw transactions returned by the fetch
	RecordsProcessed  int    // candidates surviving filter + dedup
	RecordsInserted   int    // new history rows created
	RecordsUpdated    int    // existing history rows overwritten
	Environment       string // deployment environment the run executed in
}
