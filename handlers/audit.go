package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"sbfarm.id/api/middleware"
	"sbfarm.id/api/models"
)

// logActivity appends an audit row inside the caller's transaction. A failure
// here fails the surrounding operation so the trail never lags the data.
func logActivity(tx *gorm.DB, r *http.Request, action, table string, recordID uint, details string, snapshot any) error {
	entry := models.ActivityLog{
		Action:    action,
		RefTable:  table,
		Details:   details,
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
	if uid := middleware.GetUserID(r); uid != 0 {
		entry.UserID = &uid
	}
	if recordID != 0 {
		entry.RecordID = &recordID
	}
	if snapshot != nil {
		raw, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}
		entry.Snapshot = raw
	}
	return tx.Create(&entry).Error
}

// changeSet is the snapshot stored alongside update audit rows.
type changeSet struct {
	Old any `json:"old"`
	New any `json:"new"`
}
