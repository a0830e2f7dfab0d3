package sim

import (
	"fmt"
	"time"
)

// filenameLayout is the timestamp component of a dataset filename.
const filenameLayout = "2006-01-02_1504"

// Truncate5 normalizes t to UTC and floors it to the 5-minute reporting
// bucket: minute rounded down to the nearest multiple of 5, seconds and
// sub-seconds zeroed.
func Truncate5(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()-t.Minute()%5, 0, 0, time.UTC)
}

// Filename is the single authoritative naming rule for generated CSVs:
// "{dataset}__{YYYY-MM-DD_HHMM}.csv" built from the truncated
// timestamp. Downstream ingestion tooling matches this exact pattern.
func Filename(dataset Dataset, t time.Time) string {
	return fmt.Sprintf("%s__%s.csv", dataset, Truncate5(t).Format(filenameLayout))
}
