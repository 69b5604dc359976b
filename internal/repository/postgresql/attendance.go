package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// ListByCheckInRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByCheckInRange(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, check_in_time, check_out_time, location_type, latitude, longitude
		FROM attendances
		WHERE check_in_time >= $1 AND check_in_time < $2
		ORDER BY check_in_time ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CheckInTime, &rec.CheckOutTime,
			&rec.LocationType, &rec.Latitude, &rec.Longitude,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) attendance.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// List implements attendance.ShiftRepository. Shifts come back in creation order so the
// first default shift is stable.
func (r *shiftRepositoryImpl) List(ctx context.Context) ([]attendance.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, late_mark_after, office_days, is_default
		FROM attendance_shifts
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []attendance.Shift
	for rows.Next() {
		var s attendance.Shift
		var officeDays []int32
		if err := rows.Scan(&s.ID, &s.Name, &s.StartTime, &s.LateMarkAfter, &officeDays, &s.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		for _, d := range officeDays {
			if d >= 0 && d <= 6 {
				s.OfficeDays = append(s.OfficeDays, time.Weekday(d))
			}
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// Create inserts a shift and returns it with its generated id.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s attendance.Shift) (attendance.Shift, error) {
	q := GetQuerier(ctx, r.db)

	officeDays := make([]int32, 0, len(s.OfficeDays))
	for _, d := range s.OfficeDays {
		officeDays = append(officeDays, int32(d))
	}

	query := `
		INSERT INTO attendance_shifts (name, start_time, late_mark_after, office_days, is_default)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if err := q.QueryRow(ctx, query, s.Name, s.StartTime, s.LateMarkAfter, officeDays, s.IsDefault).Scan(&s.ID); err != nil {
		return attendance.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return s, nil
}
