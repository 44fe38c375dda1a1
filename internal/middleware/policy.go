package middleware

import "github.com/Paudel3101/meditrack/internal/model"

// Operation names a gated API capability. The policy table below is
// the single place the access matrix lives; routes reference
// operations, never role lists.
type Operation string

const (
	OpPatientRead       Operation = "patient:read"
	OpPatientWrite      Operation = "patient:write"
	OpPatientArchive    Operation = "patient:archive"
	OpAppointmentRead   Operation = "appointment:read"
	OpAppointmentWrite  Operation = "appointment:write"
	OpAppointmentStatus Operation = "appointment:status"
	OpAppointmentDelete Operation = "appointment:delete"
	OpStaffRead         Operation = "staff:read"
	OpStaffManage       Operation = "staff:manage"
	OpDashboardRead     Operation = "dashboard:read"
)

var anyStaff = []model.StaffRole{
	model.RoleAdmin, model.RoleDoctor, model.RoleNurse, model.RoleReceptionist,
}

var policy = map[Operation][]model.StaffRole{
	OpPatientRead:       anyStaff,
	OpPatientWrite:      {model.RoleAdmin, model.RoleDoctor, model.RoleReceptionist},
	OpPatientArchive:    {model.RoleAdmin},
	OpAppointmentRead:   anyStaff,
	OpAppointmentWrite:  {model.RoleAdmin, model.RoleDoctor, model.RoleReceptionist},
	OpAppointmentStatus: anyStaff,
	OpAppointmentDelete: {model.RoleAdmin, model.RoleReceptionist},
	OpStaffRead:         {model.RoleAdmin, model.RoleReceptionist},
	OpStaffManage:       {model.RoleAdmin},
	OpDashboardRead:     anyStaff,
}

// RoleAllowed reports whether role may perform op. Unknown operations
// are always denied.
func RoleAllowed(op Operation, role model.StaffRole) bool {
	allowed, ok := policy[op]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
