package attendance

import "errors"

var (
	ErrInvalidShiftStartTime = errors.New("shift start time must be HH:MM")
	ErrNoShiftResolved       = errors.New("no shift assigned and no default shift configured")
)
