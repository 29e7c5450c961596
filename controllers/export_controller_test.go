package controllers

import (
	"testing"
	"time"

	"potrack-app/config"
	"potrack-app/repositories"
	"potrack-app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorkbook(t *testing.T) {
	config.LoadConfig()

	rows := []repositories.MovementRow{
		{
			ProductionOrder: "PO-100",
			WorkCenterID:    1,
			WorkCenterName:  "WC001 - Assembly",
			Quantity:        10,
			OrderType:       "IN",
			Remark:          "",
			UserName:        "",
			Username:        "op1",
			UserDepartment:  "",
			CreatedAt:       time.Date(2024, 1, 16, 4, 45, 0, 0, time.UTC),
		},
	}
	balances := services.SummarizeBalances(rows, false, config.ReportLocation())

	f, err := buildWorkbook(rows, balances)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Production Orders", "Balance Report"}, f.GetSheetList())

	header, err := f.GetCellValue("Production Orders", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Production Order", header)

	po, err := f.GetCellValue("Production Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, "PO-100", po)

	// Empty remark/name/department render as fallbacks
	remark, err := f.GetCellValue("Production Orders", "E2")
	require.NoError(t, err)
	assert.Equal(t, "-", remark)

	name, err := f.GetCellValue("Production Orders", "F2")
	require.NoError(t, err)
	assert.Equal(t, "op1", name)

	// 04:45 UTC at the default +5:30 offset
	stamp, err := f.GetCellValue("Production Orders", "H2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16 10:15:00 "+config.ReportTZLabel, stamp)

	balance, err := f.GetCellValue("Balance Report", "F2")
	require.NoError(t, err)
	assert.Equal(t, "10", balance)
}
