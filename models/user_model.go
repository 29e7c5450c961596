package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username    string `json:"username" gorm:"unique"`
	Password    string `json:"-"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	IsAdmin     bool   `json:"is_admin" gorm:"default:false"`
	ExcelAccess bool   `json:"excel_access" gorm:"default:false"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
