package models

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&Gender{},
		&Customer{},
		&Employee{},
		&EmployeeDutyStatus{},
		&DiningTable{},
		&MenuItem{},
		&Reservation{},
		&ReservationTable{},
		&ReservationMenuItem{},
	}
}
