package repositories

import (
	"potrack-app/models"

	"gorm.io/gorm"
)

type WorkCenterRepository struct {
	db *gorm.DB
}

func NewWorkCenterRepository(db *gorm.DB) *WorkCenterRepository {
	return &WorkCenterRepository{db}
}

func (r *WorkCenterRepository) GetActive() ([]models.WorkCenter, error) {
	var workcenters []models.WorkCenter
	if err := r.db.Where("is_active = ?", true).Find(&workcenters).Error; err != nil {
		return nil, err
	}
	return workcenters, nil
}

// GetActiveForDepartment returns the active work centers assigned to the
// department with the given name. A department name nobody registered yields
// an empty list, not an error.
func (r *WorkCenterRepository) GetActiveForDepartment(departmentName string) ([]models.WorkCenter, error) {
	var workcenters []models.WorkCenter
	err := r.db.
		Distinct("work_centers.*").
		Joins("INNER JOIN workcenter_departments ON workcenter_departments.work_center_id = work_centers.id").
		Joins("INNER JOIN departments ON departments.id = workcenter_departments.department_id").
		Where("work_centers.is_active = ? AND departments.name = ?", true, departmentName).
		Find(&workcenters).Error
	if err != nil {
		return nil, err
	}
	return workcenters, nil
}

// Delete removes a work center unless ledger events still reference it.
func (r *WorkCenterRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var workcenter models.WorkCenter
		if err := tx.First(&workcenter, id).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.ProductionOrder{}).Where("workcenter_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrWorkCenterInUse
		}

		if err := tx.Model(&workcenter).Association("Departments").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&workcenter).Error
	})
}
