package budget

import (
	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/model"
)

// Summary is the cost/revenue/profit roll-up of a budget.
type Summary struct {
	TotalPlannedCost     decimal.Decimal `json:"totalPlannedCost"`
	TotalActualCost      decimal.Decimal `json:"totalActualCost"`
	TotalCostVariance    decimal.Decimal `json:"totalCostVariance"`
	TotalPlannedRevenue  decimal.Decimal `json:"totalPlannedRevenue"`
	TotalActualRevenue   decimal.Decimal `json:"totalActualRevenue"`
	TotalRevenueVariance decimal.Decimal `json:"totalRevenueVariance"`
	PlannedProfit        decimal.Decimal `json:"plannedProfit"`
	ActualProfit         decimal.Decimal `json:"actualProfit"`
	ProfitVariance       decimal.Decimal `json:"profitVariance"`
	ProfitMarginPlanned  string          `json:"profitMarginPlanned"`
	ProfitMarginActual   string          `json:"profitMarginActual"`
}

// Summarize rolls up costs and revenues. When eventID is non-empty only lines
// for that event are counted. Soft-deleted lines are skipped.
func Summarize(costs, revenues []model.LineItem, eventID string) Summary {
	plannedCost, actualCost := totals(costs, eventID)
	plannedRev, actualRev := totals(revenues, eventID)

	plannedProfit := plannedRev.Sub(plannedCost)
	actualProfit := actualRev.Sub(actualCost)

	return Summary{
		TotalPlannedCost:     plannedCost,
		TotalActualCost:      actualCost,
		TotalCostVariance:    Variance(plannedCost, actualCost),
		TotalPlannedRevenue:  plannedRev,
		TotalActualRevenue:   actualRev,
		TotalRevenueVariance: Variance(plannedRev, actualRev),
		PlannedProfit:        plannedProfit,
		ActualProfit:         actualProfit,
		ProfitVariance:       Variance(plannedProfit, actualProfit),
		ProfitMarginPlanned:  margin(plannedProfit, plannedRev),
		ProfitMarginActual:   margin(actualProfit, actualRev),
	}
}

func totals(items []model.LineItem, eventID string) (planned, actual decimal.Decimal) {
	for _, it := range items {
		if !included(it, eventID) {
			continue
		}
		planned = planned.Add(it.Planned)
		actual = actual.Add(it.Actual)
	}
	return planned, actual
}

func included(it model.LineItem, eventID string) bool {
	if it.IsDeleted {
		return false
	}
	return eventID == "" || it.Event == eventID
}

// margin returns profit/revenue*100 with two decimals, or "0.00" when there
// is no revenue.
func margin(profit, revenue decimal.Decimal) string {
	if revenue.IsZero() {
		return "0.00"
	}
	return profit.Div(revenue).Mul(hundred).StringFixed(2)
}

// CategorySummary is the planned/actual total of one budget category.
type CategorySummary struct {
	Category string          `json:"category"`
	Planned  decimal.Decimal `json:"planned"`
	Actual   decimal.Decimal `json:"actual"`
	Variance decimal.Decimal `json:"variance"`
	Count    int             `json:"count"`
}

// ByCategory groups items by category in order of first appearance.
func ByCategory(items []model.LineItem, eventID string) []CategorySummary {
	index := make(map[string]int)
	var out []CategorySummary
	for _, it := range items {
		if !included(it, eventID) {
			continue
		}
		i, seen := index[it.Category]
		if !seen {
			i = len(out)
			index[it.Category] = i
			out = append(out, CategorySummary{Category: it.Category})
		}
		out[i].Planned = out[i].Planned.Add(it.Planned)
		out[i].Actual = out[i].Actual.Add(it.Actual)
		out[i].Count++
	}
	for i := range out {
		out[i].Variance = Variance(out[i].Planned, out[i].Actual)
	}
	return out
}
