package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderRows(t *testing.T) {
	raw := []string{
		"1|PO-100|25|Urgent",
		"",                    // empty submission line
		"|PO-101|10|",         // missing work center: dropped
		"2| PO-102 |abc| ok ", // bad quantity defaults to 0, fields trimmed
		"3|PO-103|5",          // wrong field count: dropped
		"4|PO-104|-7|",        // negative quantity defaults to 0
	}

	rows, dropped := ParseOrderRows(raw)

	require.Len(t, rows, 3)
	// baris kosong tidak dihitung, dua baris invalid masuk hitungan dropped
	assert.Equal(t, 2, dropped)

	assert.Equal(t, uint(1), rows[0].WorkCenterID)
	assert.Equal(t, "PO-100", rows[0].ProductionOrder)
	assert.Equal(t, 25, rows[0].Quantity)
	assert.Equal(t, "Urgent", rows[0].Remark)

	assert.Equal(t, uint(2), rows[1].WorkCenterID)
	assert.Equal(t, "PO-102", rows[1].ProductionOrder)
	assert.Equal(t, 0, rows[1].Quantity)
	assert.Equal(t, "ok", rows[1].Remark)

	assert.Equal(t, uint(4), rows[2].WorkCenterID)
	assert.Equal(t, 0, rows[2].Quantity)
}

func TestParseOrderRows_Empty(t *testing.T) {
	rows, dropped := ParseOrderRows(nil)
	assert.Empty(t, rows)
	assert.Zero(t, dropped)

	rows, dropped = ParseOrderRows([]string{"", ""})
	assert.Empty(t, rows)
	assert.Zero(t, dropped)
}
