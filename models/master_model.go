package models

import "gorm.io/gorm"

type WorkCenter struct {
	gorm.Model
	Name        string       `json:"name" gorm:"not null"`
	IsActive    bool         `json:"is_active" gorm:"default:true"`
	Departments []Department `json:"departments" gorm:"many2many:workcenter_departments;"`
}

type Department struct {
	gorm.Model
	Name        string       `json:"name" gorm:"not null"`
	IsActive    bool         `json:"is_active" gorm:"default:true"`
	WorkCenters []WorkCenter `json:"-" gorm:"many2many:workcenter_departments;"`
}
