package session

import (
	"testing"

	"github.com/reserfast/reserfast-api/internal/constants"
	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/stretchr/testify/assert"
)

type mapValues map[string]interface{}

func (m mapValues) Get(key interface{}) interface{} {
	return m[key.(string)]
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name         string
		values       mapValues
		wantKind     Kind
		wantConflict bool
	}{
		{"empty", mapValues{}, Anonymous, false},
		{"customer", mapValues{constants.SessionCustomerID: uint64(7)}, Customer, false},
		{"employee", mapValues{constants.SessionEmployeeID: uint64(3), constants.SessionEmployeeRole: "cook"}, Employee, false},
		{"both markers", mapValues{constants.SessionCustomerID: uint64(7), constants.SessionEmployeeID: uint64(3)}, Anonymous, true},
		{"zero id", mapValues{constants.SessionCustomerID: uint64(0)}, Anonymous, false},
		{"unexpected type", mapValues{constants.SessionCustomerID: "7"}, Anonymous, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state, conflict := Resolve(tc.values)
			assert.Equal(t, tc.wantKind, state.Kind)
			assert.Equal(t, tc.wantConflict, conflict)
		})
	}
}

func TestResolve_CarriesIdentity(t *testing.T) {
	state, _ := Resolve(mapValues{constants.SessionEmployeeID: 4, constants.SessionEmployeeRole: "waiter"})
	assert.Equal(t, uint64(4), state.EmployeeID)
	assert.Equal(t, models.RoleWaiter, state.Role)

	state, _ = Resolve(mapValues{constants.SessionCustomerID: int64(9)})
	assert.Equal(t, uint64(9), state.CustomerID)
}

func TestState_HasRole(t *testing.T) {
	cook := State{Kind: Employee, EmployeeID: 1, Role: models.RoleCook}

	assert.True(t, cook.HasRole())
	assert.True(t, cook.HasRole(models.RoleCook, models.RoleAdmin))
	assert.False(t, cook.HasRole(models.RoleAdmin))
	assert.False(t, State{Kind: Customer, CustomerID: 1}.HasRole())
}
