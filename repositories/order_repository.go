package repositories

import (
	"errors"
	"time"

	"potrack-app/models"
	"potrack-app/types"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db}
}

// MovementRow is one ledger event joined with its work center and author.
// Rows whose work center no longer exists are excluded by the inner join,
// so consumers never see a dangling work-center reference.
type MovementRow struct {
	ID              types.SnowflakeID `json:"ID"`
	ProductionOrder string            `json:"production_order"`
	WorkCenterID    uint              `json:"workcenter_id"`
	WorkCenterName  string            `json:"workcenter_name"`
	Quantity        int               `json:"quantity"`
	OrderType       string            `json:"order_type"`
	Remark          string            `json:"remark"`
	UserID          uint              `json:"user_id"`
	UserName        string            `json:"user_name"`
	Username        string            `json:"username"`
	UserDepartment  string            `json:"user_department"`
	CreatedAt       time.Time         `json:"created_at"`
}

// OrderFilter holds the optional report criteria. All set fields are ANDed.
// DateFrom/DateTo are yyyy-mm-dd and compare the UTC calendar date of
// created_at, both bounds inclusive.
type OrderFilter struct {
	Search       string
	WorkCenterID uint
	DateFrom     string
	DateTo       string
}

const movementSelect = `production_orders.id, production_orders.production_order,
	production_orders.workcenter_id AS work_center_id, work_centers.name AS work_center_name,
	production_orders.quantity, production_orders.order_type, production_orders.remark,
	production_orders.user_id, users.name AS user_name, users.username,
	users.department AS user_department, production_orders.created_at`

func (r *OrderRepository) baseQuery() *gorm.DB {
	return r.db.Table("production_orders").
		Select(movementSelect).
		Joins("INNER JOIN work_centers ON work_centers.id = production_orders.workcenter_id").
		Joins("INNER JOIN users ON users.id = production_orders.user_id")
}

func applyFilter(q *gorm.DB, filter OrderFilter) *gorm.DB {
	if filter.Search != "" {
		q = q.Where("production_orders.production_order LIKE ?", "%"+filter.Search+"%")
	}

	if filter.WorkCenterID != 0 {
		q = q.Where("production_orders.workcenter_id = ?", filter.WorkCenterID)
	}

	// Date bounds as half-open UTC instants, equivalent to comparing the
	// truncated calendar date and portable across every supported driver.
	if filter.DateFrom != "" {
		if from, err := time.ParseInLocation("2006-01-02", filter.DateFrom, time.UTC); err == nil {
			q = q.Where("production_orders.created_at >= ?", from)
		}
	}

	if filter.DateTo != "" {
		if to, err := time.ParseInLocation("2006-01-02", filter.DateTo, time.UTC); err == nil {
			q = q.Where("production_orders.created_at < ?", to.AddDate(0, 0, 1))
		}
	}

	return q
}

// Search returns matching movement rows, newest first.
func (r *OrderRepository) Search(filter OrderFilter) ([]MovementRow, error) {
	var rows []MovementRow
	q := applyFilter(r.baseQuery(), filter).Order("production_orders.created_at DESC")
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchUnordered skips the ORDER BY for aggregation input; the balance
// aggregator re-sorts its output anyway.
func (r *OrderRepository) SearchUnordered(filter OrderFilter) ([]MovementRow, error) {
	var rows []MovementRow
	if err := applyFilter(r.baseQuery(), filter).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchForDepartment narrows the result to rows authored by users of the
// given department. Newest first.
func (r *OrderRepository) SearchForDepartment(filter OrderFilter, department string) ([]MovementRow, error) {
	var rows []MovementRow
	q := applyFilter(r.baseQuery(), filter).
		Where("users.department = ?", department).
		Order("production_orders.created_at DESC")
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateBatch inserts all events in one transaction: either the whole batch
// is committed or none of it.
func (r *OrderRepository) CreateBatch(events []models.ProductionOrder) error {
	if len(events) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range events {
			if err := tx.Create(&events[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// BulkDeleteByIDs deletes the events whose id is in ids and returns the
// number of rows removed.
func (r *OrderRepository) BulkDeleteByIDs(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", ids).Delete(&models.ProductionOrder{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

// OrderKey identifies every event of one production order at one work center.
type OrderKey struct {
	ProductionOrder string `json:"production_order"`
	WorkCenterID    uint   `json:"workcenter_id"`
}

// BulkDeleteByKey deletes all events exactly matching the key.
func (r *OrderRepository) BulkDeleteByKey(productionOrder string, workCenterID uint) (int64, error) {
	return r.BulkDeleteByKeys([]OrderKey{{ProductionOrder: productionOrder, WorkCenterID: workCenterID}})
}

// BulkDeleteByKeys deletes all events matching any of the keys in a single
// transaction.
func (r *OrderRepository) BulkDeleteByKeys(keys []OrderKey) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			res := tx.Where("production_order = ? AND workcenter_id = ?", key.ProductionOrder, key.WorkCenterID).
				Delete(&models.ProductionOrder{})
			if res.Error != nil {
				return res.Error
			}
			deleted += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *OrderRepository) CountByType(orderType string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProductionOrder{}).Where("order_type = ?", orderType).Count(&count).Error
	return count, err
}

// Recent returns the latest movement rows for the dashboard.
func (r *OrderRepository) Recent(limit int) ([]MovementRow, error) {
	var rows []MovementRow
	q := r.baseQuery().Order("production_orders.created_at DESC").Limit(limit)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ErrWorkCenterInUse is returned when a work center still has ledger events
// referencing it and therefore cannot be removed.
var ErrWorkCenterInUse = errors.New("work center is referenced by production orders")
