package models

type RoleCode string

const (
	RoleAdmin  RoleCode = "admin"
	RoleWaiter RoleCode = "waiter"
	RoleCook   RoleCode = "cook"
)

// Valid reports whether r is one of the known employee roles.
func (r RoleCode) Valid() bool {
	switch r {
	case RoleAdmin, RoleWaiter, RoleCook:
		return true
	}
	return false
}

// Role is seeded reference data; the code doubles as primary key.
type Role struct {
	Code        RoleCode `gorm:"type:varchar(20);primaryKey" json:"code"`
	DisplayName string   `gorm:"type:varchar(50);not null" json:"display_name"`
	Activatable
}

// DefaultRoles lists the roles seeded at startup.
func DefaultRoles() []Role {
	return []Role{
		{Code: RoleAdmin, DisplayName: "Administrador", Activatable: Activatable{Active: true}},
		{Code: RoleWaiter, DisplayName: "Garzón", Activatable: Activatable{Active: true}},
		{Code: RoleCook, DisplayName: "Cocina", Activatable: Activatable{Active: true}},
	}
}
