package store

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// UserDocument is the one JSON document each user owns.
type UserDocument struct {
	UserID    uint64          `gorm:"primaryKey;autoIncrement:false"`
	Data      json.RawMessage `gorm:"type:jsonb;not null"`
	Version   uint64          `gorm:"not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"index;not null"`
}

// DocumentEvent is append-only. Fields lists the top-level document keys the
// change touched.
type DocumentEvent struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"index;not null" json:"-"`
	Type      string    `gorm:"not null" json:"type"`
	Fields    FieldList `gorm:"not null" json:"fields"`
	Version   uint64    `gorm:"not null" json:"version"`
	CreatedAt time.Time `gorm:"index;not null" json:"createdAt"`
}

// FieldList is a text[] on Postgres and its array literal in a text column
// elsewhere.
type FieldList []string

func (f FieldList) Value() (driver.Value, error) {
	if f == nil {
		f = FieldList{}
	}
	return pq.StringArray(f).Value()
}

func (f *FieldList) Scan(src any) error {
	return (*pq.StringArray)(f).Scan(src)
}

func (FieldList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
