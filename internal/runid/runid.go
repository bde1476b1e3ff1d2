// Package runid computes run correlation ids.
package runid

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/mr-tron/base58"

	"mlb-roster-sync/internal/domain"
)

// idBytes of the digest are kept; base58 keeps the result short and
// copy-paste safe for log search.
const idBytes = 8

// New computes a deterministic correlation id for one run using SHA256.
// Formula: SHA256(startDate|endDate|startTimeMillis), truncated and
// base58-encoded. The same window started at the same instant always maps
// to the same id, so audit entries and notifications can be joined.
func New(w domain.Window, startTime time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", w.StartDate(), w.EndDate(), startTime.UnixMilli())
	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:idBytes])
}
