package mlbstats

// Wire types for the transactions endpoint. The payload is parsed strictly
// into these shapes during fetch; entries missing nested objects keep nil
// pointers and are rejected downstream as malformed records.

// transactionsResponse is the top-level response envelope.
type transactionsResponse struct {
	Transactions []wireTransaction `json:"transactions"`
}

// wireTransaction is one raw transaction entry.
type wireTransaction struct {
	ID          int64    `json:"id"`
	Person      *wireRef `json:"person"`
	ToTeam      *wireRef `json:"toTeam"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
}

// wireRef is a nested entity reference carrying only the id.
type wireRef struct {
	ID *int `json:"id"`
}

// id flattens a possibly absent reference into a nullable id.
func (r *wireRef) id() *int {
	if r == nil {
		return nil
	}
	return r.ID
}
