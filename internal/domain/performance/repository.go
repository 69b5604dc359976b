package performance

import (
	"context"
	"time"
)

type KPIRepository interface {
	List(ctx context.Context) ([]KPI, error)
}

type ManualScoreRepository interface {
	// ListByPeriod returns the manual KPI scores entered for the month.
	ListByPeriod(ctx context.Context, year, month int) (ManualScores, error)
}

type TaskRepository interface {
	// ListCompletedBetween returns tasks completed in [from, to).
	ListCompletedBetween(ctx context.Context, from, to time.Time) ([]Task, error)
}
