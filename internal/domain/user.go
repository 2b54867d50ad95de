package domain

import "time"

// Role of a staff member
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
	RoleBarber       Role = "barber"
)

// User staff member (admin panel account). Barbers are users with RoleBarber.
type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	Role           Role
	FullName       string
	Phone          *string
	Specialization *string
	IsActive       bool
	CreatedAt      time.Time
}

// CanManageBookings admin and receptionist see and edit every booking
func (u *User) CanManageBookings() bool {
	return u.Role == RoleAdmin || u.Role == RoleReceptionist
}

// IsBarber returns true for an active barber
func (u *User) IsBarber() bool {
	return u.Role == RoleBarber
}

// ParseRole accepts "reception" as an alias of receptionist
func ParseRole(s string) (Role, bool) {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RoleReceptionist), "reception":
		return RoleReceptionist, true
	case string(RoleBarber):
		return RoleBarber, true
	}
	return "", false
}

// Service offered by the barbershop
type Service struct {
	ID              int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	IsActive        bool
}
