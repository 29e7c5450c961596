package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"potrack-app/repositories"
)

// BalanceSummary is the derived balance line for one grouping key. It is
// recomputed from the filtered ledger on every request, never stored.
type BalanceSummary struct {
	ProductionOrder string `json:"production_order"`
	WorkCenterName  string `json:"workcenter_name"`
	WorkCenterID    uint   `json:"workcenter_id"`
	UserName        string `json:"user_name"`
	UserDepartment  string `json:"user_department"`
	TotalIn         int    `json:"total_in"`
	TotalOut        int    `json:"total_out"`
	Balance         int    `json:"balance"`
	RemarksText     string `json:"remarks_text"`
	LastActivity    string `json:"last_activity,omitempty"`
}

// balanceAccumulator collects one grouping key while the reducer walks the
// event list.
type balanceAccumulator struct {
	productionOrder string
	workCenterName  string
	workCenterID    uint
	userName        string
	userDepartment  string
	totalIn         int
	totalOut        int
	remarks         map[string]struct{}
	lastActivity    time.Time
}

// SummarizeBalances reduces movement rows to balance summaries.
//
// Rows are grouped by (production order, work center) or, when groupByUser is
// set, by (production order, work center, author). Quantities are summed per
// direction, trimmed non-empty remarks are collected as an exact-match set,
// and for the per-user variant the latest created_at is tracked and rendered
// in loc. The result is sorted by production order, work center name and,
// when grouping by user, author name; ties keep first-seen order so identical
// input always yields identical output.
func SummarizeBalances(rows []repositories.MovementRow, groupByUser bool, loc *time.Location) []BalanceSummary {
	accumulators := make(map[string]*balanceAccumulator)
	var keyOrder []string

	for _, row := range rows {
		key := fmt.Sprintf("%s_%d", row.ProductionOrder, row.WorkCenterID)
		if groupByUser {
			key = fmt.Sprintf("%s_%d", key, row.UserID)
		}

		acc, ok := accumulators[key]
		if !ok {
			userName := row.UserName
			if userName == "" {
				userName = row.Username
			}
			userDepartment := row.UserDepartment
			if userDepartment == "" {
				userDepartment = "-"
			}

			acc = &balanceAccumulator{
				productionOrder: row.ProductionOrder,
				workCenterName:  row.WorkCenterName,
				workCenterID:    row.WorkCenterID,
				userName:        userName,
				userDepartment:  userDepartment,
				remarks:         make(map[string]struct{}),
				lastActivity:    row.CreatedAt,
			}
			accumulators[key] = acc
			keyOrder = append(keyOrder, key)
		}

		if row.OrderType == "IN" {
			acc.totalIn += row.Quantity
		} else {
			acc.totalOut += row.Quantity
		}

		if row.CreatedAt.After(acc.lastActivity) {
			acc.lastActivity = row.CreatedAt
		}

		if remark := strings.TrimSpace(row.Remark); remark != "" {
			acc.remarks[remark] = struct{}{}
		}
	}

	summaries := make([]BalanceSummary, 0, len(keyOrder))
	for _, key := range keyOrder {
		acc := accumulators[key]
		summary := BalanceSummary{
			ProductionOrder: acc.productionOrder,
			WorkCenterName:  acc.workCenterName,
			WorkCenterID:    acc.workCenterID,
			UserName:        acc.userName,
			UserDepartment:  acc.userDepartment,
			TotalIn:         acc.totalIn,
			TotalOut:        acc.totalOut,
			Balance:         acc.totalIn - acc.totalOut,
			RemarksText:     renderRemarks(acc.remarks),
		}
		if groupByUser {
			summary.LastActivity = acc.lastActivity.In(loc).Format("2006-01-02 15:04:05")
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.ProductionOrder != b.ProductionOrder {
			return a.ProductionOrder < b.ProductionOrder
		}
		if a.WorkCenterName != b.WorkCenterName {
			return a.WorkCenterName < b.WorkCenterName
		}
		if groupByUser && a.UserName != b.UserName {
			return a.UserName < b.UserName
		}
		return false
	})

	return summaries
}

func renderRemarks(remarks map[string]struct{}) string {
	if len(remarks) == 0 {
		return "-"
	}

	sorted := make([]string, 0, len(remarks))
	for remark := range remarks {
		sorted = append(sorted, remark)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
