package repositories_test

import (
	"sync"
	"testing"
	"time"

	"potrack-app/controllers/idgen"
	"potrack-app/migration"
	"potrack-app/models"
	"potrack-app/repositories"
	"potrack-app/services"
	"potrack-app/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var idgenOnce sync.Once

func newTestDB(t *testing.T) *gorm.DB {
	idgenOnce.Do(idgen.Init)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Keep the private in-memory database on a single connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migration.Migrate(db))
	return db
}

func seedMasterData(t *testing.T, db *gorm.DB) {
	users := []models.User{
		{Username: "op1", Name: "Operator One", Department: "Production", IsActive: true},
		{Username: "qa1", Name: "Inspector One", Department: "Quality Control", IsActive: true},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
	}

	workcenters := []models.WorkCenter{
		{Name: "WC001 - Assembly", IsActive: true},
		{Name: "WC002 - Machining", IsActive: true},
	}
	for i := range workcenters {
		require.NoError(t, db.Create(&workcenters[i]).Error)
	}
}

func event(po string, wcID uint, qty int, orderType string, remark string, userID uint, createdAt time.Time) models.ProductionOrder {
	return models.ProductionOrder{
		ID:              types.SnowflakeID(idgen.GenerateID()),
		ProductionOrder: po,
		WorkCenterID:    wcID,
		Quantity:        qty,
		OrderType:       orderType,
		Remark:          remark,
		UserID:          userID,
		CreatedAt:       createdAt,
	}
}

func TestSearch_Filters(t *testing.T) {
	db := newTestDB(t)
	seedMasterData(t, db)
	repo := repositories.NewOrderRepository(db)

	day1 := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	day1Late := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateBatch([]models.ProductionOrder{
		event("PO-100", 1, 10, "IN", "", 1, day1),
		event("PO-100", 1, 4, "OUT", "", 1, day1Late),
		event("PO-200", 2, 7, "IN", "", 2, day2),
	}))

	// Substring search
	rows, err := repo.Search(repositories.OrderFilter{Search: "O-1"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "PO-100", r.ProductionOrder)
	}

	// Work-center filter
	rows, err = repo.Search(repositories.OrderFilter{WorkCenterID: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PO-200", rows[0].ProductionOrder)
	assert.Equal(t, "WC002 - Machining", rows[0].WorkCenterName)
	assert.Equal(t, "Inspector One", rows[0].UserName)

	// DateTo is inclusive of the whole UTC calendar day
	rows, err = repo.Search(repositories.OrderFilter{DateTo: "2024-03-10"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// DateFrom excludes everything before the day
	rows, err = repo.Search(repositories.OrderFilter{DateFrom: "2024-03-11"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PO-200", rows[0].ProductionOrder)

	// Composable: all criteria ANDed
	rows, err = repo.Search(repositories.OrderFilter{
		Search:       "PO-100",
		WorkCenterID: 1,
		DateFrom:     "2024-03-10",
		DateTo:       "2024-03-10",
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// No matches is an empty list, not an error
	rows, err = repo.Search(repositories.OrderFilter{Search: "missing"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSearch_OrderedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	seedMasterData(t, db)
	repo := repositories.NewOrderRepository(db)

	older := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateBatch([]models.ProductionOrder{
		event("PO-OLD", 1, 1, "IN", "", 1, older),
		event("PO-NEW", 1, 1, "IN", "", 1, newer),
	}))

	rows, err := repo.Search(repositories.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PO-NEW", rows[0].ProductionOrder)
	assert.Equal(t, "PO-OLD", rows[1].ProductionOrder)
}

func TestSearchForDepartment(t *testing.T) {
	db := newTestDB(t)
	seedMasterData(t, db)
	repo := repositories.NewOrderRepository(db)

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateBatch([]models.ProductionOrder{
		event("PO-100", 1, 10, "IN", "", 1, now),
		event("PO-200", 2, 7, "IN", "", 2, now),
	}))

	rows, err := repo.SearchForDepartment(repositories.OrderFilter{}, "Production")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PO-100", rows[0].ProductionOrder)

	rows, err = repo.SearchForDepartment(repositories.OrderFilter{}, "Logistics")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreateBatch_RollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	seedMasterData(t, db)
	repo := repositories.NewOrderRepository(db)

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	first := event("PO-100", 1, 10, "IN", "", 1, now)
	second := event("PO-200", 2, 7, "IN", "", 2, now)
	second.ID = first.ID // primary key bentrok, baris kedua gagal

	err := repo.CreateBatch([]models.ProductionOrder{first, second})
	require.Error(t, err)

	// Batch gagal tidak boleh menyisakan baris apa pun
	var count int64
	require.NoError(t, db.Model(&models.ProductionOrder{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBulkDeleteByIDs_ReflectedInNextAggregation(t *testing.T) {
	db := newTestDB(t)
	seedMasterData(t, db)
	repo := repositories.NewOrderRepository(db)

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	in := event("PO-100", 1, 10, "IN", "", 1, now)
	out := event("PO-100", 1, 4, "OUT", "", 1, now)
	require.NoError(t, repo.CreateBatch([]models.ProductionOrder{in, out}))

	deleted, err := repo.BulkDeleteByIDs([]int64{int64(out.ID)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	rows, err := repo.SearchUnordered(repositories.OrderFilter{})
	require.NoError(t, err)

	summaries := services.SummarizeBalances(rows, false, time.UTC)
	require.Len(t, summaries, 1)
	assert.Equal(t, 10, summaries[0].TotalIn)
	assert.Equal(t, 0, summaries[0].TotalOut)
	assert.Equal(t, 10, summaries[0].Balance)
}

func TestBulkDeleteByKeys(t *testing.T) {
	db := newTestDB(t)
	seedMasterData(t, db)
	repo := repositories.NewOrderRepository(db)

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateBatch([]models.ProductionOrder{
		event("PO-100", 1, 10, "IN", "", 1, now),
		event("PO-100", 1, 4, "OUT", "", 1, now),
		event("PO-100", 2, 3, "IN", "", 1, now), // same PO, other work center
		event("PO-200", 1, 5, "IN", "", 1, now),
	}))

	deleted, err := repo.BulkDeleteByKey("PO-100", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	rows, err := repo.SearchUnordered(repositories.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Unknown key deletes nothing
	deleted, err = repo.BulkDeleteByKey("PO-100", 1)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestCountByTypeAndRecent(t *testing.T) {
	db := newTestDB(t)
	seedMasterData(t, db)
	repo := repositories.NewOrderRepository(db)

	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateBatch([]models.ProductionOrder{
		event("PO-1", 1, 1, "IN", "", 1, base),
		event("PO-2", 1, 1, "IN", "", 1, base.Add(time.Hour)),
		event("PO-3", 1, 1, "OUT", "", 1, base.Add(2*time.Hour)),
	}))

	in, err := repo.CountByType("IN")
	require.NoError(t, err)
	assert.Equal(t, int64(2), in)

	out, err := repo.CountByType("OUT")
	require.NoError(t, err)
	assert.Equal(t, int64(1), out)

	recent, err := repo.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "PO-3", recent[0].ProductionOrder)
}

func TestWorkCenterDelete_RefusedWhileInUse(t *testing.T) {
	db := newTestDB(t)
	seedMasterData(t, db)
	orderRepo := repositories.NewOrderRepository(db)
	wcRepo := repositories.NewWorkCenterRepository(db)

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, orderRepo.CreateBatch([]models.ProductionOrder{
		event("PO-100", 1, 10, "IN", "", 1, now),
	}))

	err := wcRepo.Delete(1)
	assert.ErrorIs(t, err, repositories.ErrWorkCenterInUse)

	// Unreferenced work center can go
	require.NoError(t, wcRepo.Delete(2))

	var count int64
	require.NoError(t, db.Model(&models.WorkCenter{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWorkCenterScoping(t *testing.T) {
	db := newTestDB(t)
	seedMasterData(t, db)
	wcRepo := repositories.NewWorkCenterRepository(db)

	var production models.Department
	require.NoError(t, db.Create(&models.Department{Name: "Production", IsActive: true}).Error)
	require.NoError(t, db.Where("name = ?", "Production").First(&production).Error)

	var assembly models.WorkCenter
	require.NoError(t, db.First(&assembly, 1).Error)
	require.NoError(t, db.Model(&assembly).Association("Departments").Replace([]models.Department{production}))

	scoped, err := wcRepo.GetActiveForDepartment("Production")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "WC001 - Assembly", scoped[0].Name)

	all, err := wcRepo.GetActive()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := wcRepo.GetActiveForDepartment("Logistics")
	require.NoError(t, err)
	assert.Empty(t, none)
}
