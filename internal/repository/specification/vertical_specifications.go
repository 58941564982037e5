package specification

import (
	"sales-intel-be/pkg/verticals"

	"gorm.io/gorm"
)

// ByVerticalKey filters vertical configurations by the full workspace key.
type ByVerticalKey struct {
	Key verticals.Key
}

func (s ByVerticalKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("vertical = ? AND sub_vertical = ? AND region = ?",
		s.Key.Vertical, s.Key.SubVertical, s.Key.Region)
}

// ByEntityID filters decision records by the scored entity.
type ByEntityID struct {
	EntityID string
}

func (s ByEntityID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entity_id = ?", s.EntityID)
}

// ByGrade filters decision records by grade (hot, warm, cold).
type ByGrade struct {
	Grade string
}

func (s ByGrade) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("grade = ?", s.Grade)
}
