package handlers

import (
	"gorm.io/gorm"

	"sbfarm.id/api/models"
)

// columnTaken reports whether another row already uses the value.
func columnTaken(tx *gorm.DB, table, column string, value any, excludeID uint) (bool, error) {
	q := tx.Table(table).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

// recordExists reports whether the table holds the id.
func recordExists(tx *gorm.DB, table string, id uint) (bool, error) {
	var n int64
	err := tx.Table(table).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// checkExists turns a missing foreign key into a field-level validation error.
func checkExists(tx *gorm.DB, table, field string, id uint) error {
	ok, err := recordExists(tx, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return errFieldTaken(field, "tidak ditemukan")
	}
	return nil
}

// mustDate parses a payload date already vetted by the datetime rule.
func mustDate(s string) models.Date {
	d, _ := models.ParseDate(s)
	return d
}

func optDate(s *string) *models.Date {
	if s == nil || *s == "" {
		return nil
	}
	d := mustDate(*s)
	return &d
}

func optString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// countWhere is a shorthand for dependency checks on delete.
func countWhere(tx *gorm.DB, table, cond string, args ...any) (int64, error) {
	var n int64
	err := tx.Table(table).Where(cond, args...).Count(&n).Error
	return n, err
}
