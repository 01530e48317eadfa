package models

// Deactivatable is implemented by every model that is soft-deleted through an
// active flag instead of being removed.
type Deactivatable interface {
	IsActive() bool
	SetActive(active bool)
}

// Activatable carries the active flag shared by all soft-deletable models.
type Activatable struct {
	Active bool `gorm:"not null;index" json:"active"`
}

func (a Activatable) IsActive() bool {
	return a.Active
}

func (a *Activatable) SetActive(active bool) {
	a.Active = active
}
