package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaterialLine is one row of an experiment's material composition.
// Ratio is derived: the percentage of Amount over the total amount across
// the experiment's materials, recomputed server-side on every write.
type MaterialLine struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Ratio  float64 `json:"ratio"`
}

type Experiment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project   *Project  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`

	Name    string `gorm:"column:name;size:200;not null" json:"name"`
	Author  string `gorm:"column:author;size:80;not null" json:"author"`
	Purpose string `gorm:"column:purpose;type:text;not null" json:"purpose"`

	// Materials holds a JSON array of MaterialLine.
	Materials datatypes.JSON `gorm:"column:materials;type:jsonb" json:"materials"`

	// ResultValues maps schema key -> scalar, string, or array of numbers
	// (the array form is repeated measurements for that key).
	ResultValues datatypes.JSON `gorm:"column:result_values;type:jsonb" json:"result_values"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Experiment) TableName() string { return "experiment" }

func (e *Experiment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
