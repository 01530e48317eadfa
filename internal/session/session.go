// Package session resolves which principal, if any, a browser session
// belongs to. Resolution is a pure function over the stored values so it
// can be tested without a request.
package session

import (
	"github.com/reserfast/reserfast-api/internal/constants"
	"github.com/reserfast/reserfast-api/internal/models"
)

type Kind int

const (
	Anonymous Kind = iota
	Customer
	Employee
)

func (k Kind) String() string {
	switch k {
	case Customer:
		return "customer"
	case Employee:
		return "employee"
	default:
		return "anonymous"
	}
}

// State is the resolved principal of a request.
type State struct {
	Kind       Kind
	CustomerID uint64
	EmployeeID uint64
	Role       models.RoleCode
}

// Values is the read side of a session store.
type Values interface {
	Get(key interface{}) interface{}
}

// Resolve inspects the session markers. When both a customer and an
// employee marker are present the state is Anonymous and conflict is true;
// the caller must then clear the session.
func Resolve(v Values) (state State, conflict bool) {
	customerID, hasCustomer := toID(v.Get(constants.SessionCustomerID))
	employeeID, hasEmployee := toID(v.Get(constants.SessionEmployeeID))

	switch {
	case hasCustomer && hasEmployee:
		return State{Kind: Anonymous}, true
	case hasCustomer:
		return State{Kind: Customer, CustomerID: customerID}, false
	case hasEmployee:
		role, _ := v.Get(constants.SessionEmployeeRole).(string)
		return State{Kind: Employee, EmployeeID: employeeID, Role: models.RoleCode(role)}, false
	default:
		return State{Kind: Anonymous}, false
	}
}

// IsCustomer reports whether the state is an authenticated customer.
func (s State) IsCustomer() bool {
	return s.Kind == Customer
}

// IsEmployee reports whether the state is an authenticated employee.
func (s State) IsEmployee() bool {
	return s.Kind == Employee
}

// HasRole reports whether the state is an employee holding one of roles.
// An empty role list admits any employee.
func (s State) HasRole(roles ...models.RoleCode) bool {
	if s.Kind != Employee {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// toID accepts the numeric types session codecs may hand back.
func toID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case float64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
