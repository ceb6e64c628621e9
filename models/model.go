package models

import "time"

// Model is the embedded base for every farm table: numeric primary key plus
// the usual timestamps.
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrimaryID returns the record's primary key. It exists so the generic
// handler layer can read the id off any entity without reflection.
func (m Model) PrimaryID() uint { return m.ID }

// Entity is satisfied by every model embedding Model.
type Entity interface {
	PrimaryID() uint
}
