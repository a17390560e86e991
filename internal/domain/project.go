package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string     `gorm:"column:name;size:200;not null;uniqueIndex" json:"name"`
	ProjectType     string     `gorm:"column:project_type;size:20;not null;default:'REGULAR'" json:"project_type"`
	ExpectedEndDate *time.Time `gorm:"column:expected_end_date" json:"expected_end_date,omitempty"`
	Status          string     `gorm:"column:status;size:20;not null;default:'ONGOING'" json:"status"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`

	Experiments   []Experiment   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"experiments,omitempty"`
	ResultSchemas []ResultSchema `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"result_schemas,omitempty"`
}

func (Project) TableName() string { return "project" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
