// ReadingFilters describe user-provided bounds to narrow the reading history.
package dto

import "time"

type ReadingFilters struct {
	After  time.Time
	Before time.Time
	Limit  int
}
