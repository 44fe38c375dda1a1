package model

// MonthlyStats breaks down the current month's appointments by status.
type MonthlyStats struct {
	Total     int64 `db:"total" json:"total"`
	Completed int64 `db:"completed" json:"completed"`
	Scheduled int64 `db:"scheduled" json:"scheduled"`
	Cancelled int64 `db:"cancelled" json:"cancelled"`
}

type DashboardStats struct {
	TotalPatients        int64        `json:"total_patients"`
	TotalStaff           int64        `json:"total_staff"`
	TodayAppointments    int64        `json:"today_appointments"`
	UpcomingAppointments int64        `json:"upcoming_appointments"`
	MonthlyStats         MonthlyStats `json:"monthly_stats"`
}

type PatientCount struct {
	ActivePatients   int64 `json:"active_patients"`
	ArchivedPatients int64 `json:"archived_patients"`
	Total            int64 `json:"total"`
}
