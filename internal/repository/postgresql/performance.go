package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/database"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/duration"
)

type kpiRepositoryImpl struct {
	db *database.DB
}

func NewKPIRepository(db *database.DB) performance.KPIRepository {
	return &kpiRepositoryImpl{db: db}
}

func (r *kpiRepositoryImpl) List(ctx context.Context) ([]performance.KPI, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name_key, type, weight::float8
		FROM kpis
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}
	defer rows.Close()

	var kpis []performance.KPI
	for rows.Next() {
		var k performance.KPI
		if err := rows.Scan(&k.ID, &k.NameKey, &k.Type, &k.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan kpi: %w", err)
		}
		kpis = append(kpis, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kpis: %w", err)
	}

	return kpis, nil
}

func (r *kpiRepositoryImpl) Create(ctx context.Context, k performance.KPI) (performance.KPI, error) {
	q := GetQuerier(ctx, r.db)

	query := `INSERT INTO kpis (name_key, type, weight) VALUES ($1, $2, $3) RETURNING id`
	if err := q.QueryRow(ctx, query, k.NameKey, k.Type, k.Weight).Scan(&k.ID); err != nil {
		return performance.KPI{}, fmt.Errorf("failed to create kpi: %w", err)
	}
	return k, nil
}

type manualScoreRepositoryImpl struct {
	db *database.DB
}

func NewManualScoreRepository(db *database.DB) performance.ManualScoreRepository {
	return &manualScoreRepositoryImpl{db: db}
}

func (r *manualScoreRepositoryImpl) ListByPeriod(ctx context.Context, year, month int) (performance.ManualScores, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, kpi_id, score
		FROM manual_kpi_scores
		WHERE period_year = $1 AND period_month = $2
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual kpi scores: %w", err)
	}
	defer rows.Close()

	scores := make(performance.ManualScores)
	for rows.Next() {
		var employeeID, kpiID string
		var score float64
		if err := rows.Scan(&employeeID, &kpiID, &score); err != nil {
			return nil, fmt.Errorf("failed to scan manual kpi score: %w", err)
		}
		if scores[employeeID] == nil {
			scores[employeeID] = make(map[string]float64)
		}
		scores[employeeID][kpiID] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate manual kpi scores: %w", err)
	}

	return scores, nil
}

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) performance.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func (r *taskRepositoryImpl) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]performance.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, COALESCE(assignee_id::text, ''), title, status, due_date, completed_at, time_spent
		FROM tasks
		WHERE status = 'done' AND completed_at >= $1 AND completed_at < $2
		ORDER BY completed_at ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []performance.Task
	for rows.Next() {
		var t performance.Task
		var timeSpent string
		if err := rows.Scan(&t.ID, &t.AssigneeID, &t.Title, &t.Status, &t.DueDate, &t.CompletedAt, &timeSpent); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		minutes, err := duration.Parse(timeSpent)
		if err != nil {
			slog.Warn("ignoring task time spent", "task_id", t.ID, "time_spent", timeSpent, "error", err)
		}
		t.TimeSpentMinutes = minutes
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}
