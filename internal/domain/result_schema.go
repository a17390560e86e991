package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResultSchema defines one result field of a project. Key is the stable
// identifier experiments store values under; it never changes after create.
type ResultSchema struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_result_schema_project_key,unique" json:"project_id"`
	Project   *Project  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`

	Key       string `gorm:"column:key;size:80;not null;index:idx_result_schema_project_key,unique" json:"key"`
	Label     string `gorm:"column:label;size:200;not null" json:"label"`
	ValueType string `gorm:"column:value_type;size:30;not null" json:"value_type"`

	Unit        string `gorm:"column:unit;size:40" json:"unit,omitempty"`
	Description string `gorm:"column:description;size:500" json:"description,omitempty"`

	// Options holds a JSON array of allowed strings; required when
	// ValueType is categorical.
	Options datatypes.JSON `gorm:"column:options;type:jsonb" json:"options,omitempty"`

	// SortOrder drives display and aggregation ordering. Values need not
	// be contiguous; ties break by insertion.
	SortOrder int `gorm:"column:sort_order;not null;default:0" json:"sort_order"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ResultSchema) TableName() string { return "result_schema" }

func (s *ResultSchema) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
