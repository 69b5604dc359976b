package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// ListByCheckInRange returns records with from <= check_in_time < to.
	ListByCheckInRange(ctx context.Context, from, to time.Time) ([]Record, error)
}

type ShiftRepository interface {
	List(ctx context.Context) ([]Shift, error)
}
