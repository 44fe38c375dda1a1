package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
)

type dashboardRepository struct {
	*BaseRepository
}

func NewDashboardRepository(db *sqlx.DB) repository.DashboardRepository {
	return &dashboardRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *dashboardRepository) Stats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats

	counters := `
		SELECT
			(SELECT COUNT(*) FROM patients WHERE is_archived = FALSE),
			(SELECT COUNT(*) FROM staff WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM appointments
				WHERE appointment_date = CURRENT_DATE AND status <> 'Cancelled'),
			(SELECT COUNT(*) FROM appointments
				WHERE appointment_date > CURRENT_DATE
				  AND appointment_date <= CURRENT_DATE + 7
				  AND status <> 'Cancelled')`

	row := r.db.QueryRowxContext(ctx, counters)
	err := row.Scan(
		&stats.TotalPatients, &stats.TotalStaff,
		&stats.TodayAppointments, &stats.UpcomingAppointments,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard counters: %w", err)
	}

	monthly := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'Completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'Scheduled') AS scheduled,
			COUNT(*) FILTER (WHERE status = 'Cancelled') AS cancelled
		FROM appointments
		WHERE date_trunc('month', appointment_date) = date_trunc('month', CURRENT_DATE)`

	if err := r.db.GetContext(ctx, &stats.MonthlyStats, monthly); err != nil {
		return nil, fmt.Errorf("failed to query monthly stats: %w", err)
	}

	return &stats, nil
}

func (r *dashboardRepository) RecentAppointments(ctx context.Context, limit int) ([]*model.AppointmentDetail, error) {
	if limit <= 0 {
		limit = 10
	}

	query := fmt.Sprintf(
		`SELECT %s %s ORDER BY a.created_at DESC LIMIT $1`,
		appointmentDetailColumns, appointmentDetailFrom,
	)

	appts := []*model.AppointmentDetail{}
	if err := r.db.SelectContext(ctx, &appts, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent appointments: %w", err)
	}
	return appts, nil
}
