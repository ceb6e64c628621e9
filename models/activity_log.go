package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is the append-only audit trail. Rows are only ever inserted;
// the application never updates or deletes them.
type ActivityLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`
	User      *User          `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Action    string         `gorm:"size:255;not null" json:"action"`
	RefTable  string         `gorm:"column:table_name;size:255" json:"table_name,omitempty"`
	RecordID  *uint          `json:"record_id,omitempty"`
	Details   string         `gorm:"type:text" json:"details,omitempty"`
	Snapshot  datatypes.JSON `json:"snapshot,omitempty"`
	IPAddress string         `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent string         `gorm:"type:text" json:"user_agent,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
