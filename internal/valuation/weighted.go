package valuation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Method names a valuation approach in a weighted combination.
type Method string

const (
	MethodDCF   Method = "dcf"
	MethodCCA   Method = "cca"
	MethodAsset Method = "asset"
	MethodDDM   Method = "ddm"
)

// WeightedItem is one method's per-share value and the weight it carries.
type WeightedItem struct {
	Method Method          `json:"method" yaml:"method"`
	Value  decimal.Decimal `json:"value" yaml:"value"`
	Weight decimal.Decimal `json:"weight" yaml:"weight"`
}

// Contribution is a WeightedItem with its value*weight product.
type Contribution struct {
	WeightedItem
	Contribution decimal.Decimal `json:"contribution"`
}

// WeightedResult is the weighted average and its per-method breakdown.
type WeightedResult struct {
	WeightedAverage decimal.Decimal `json:"weightedAverage"`
	Breakdown       []Contribution  `json:"breakdown"`
}

// Weighted returns sum(value*weight)/sum(weight). Weights are used as given;
// they need not sum to 1. A zero total weight yields a zero average.
func Weighted(items []WeightedItem) WeightedResult {
	total := decimal.Zero
	weights := decimal.Zero
	breakdown := make([]Contribution, len(items))
	for i, it := range items {
		c := it.Value.Mul(it.Weight)
		breakdown[i] = Contribution{WeightedItem: it, Contribution: c}
		total = total.Add(c)
		weights = weights.Add(it.Weight)
	}

	avg := decimal.Zero
	if !weights.IsZero() {
		avg = total.Div(weights)
	}
	return WeightedResult{WeightedAverage: avg, Breakdown: breakdown}
}

// Download is the document offered when a user saves a valuation.
type Download struct {
	ValuationMethods []Contribution  `json:"valuationMethods"`
	WeightedAverage  decimal.Decimal `json:"weightedAverage"`
	CalculatedOn     time.Time       `json:"calculatedOn"`
}

// Report combines items and stamps the result with at.
func Report(items []WeightedItem, at time.Time) Download {
	res := Weighted(items)
	return Download{
		ValuationMethods: res.Breakdown,
		WeightedAverage:  res.WeightedAverage,
		CalculatedOn:     at,
	}
}
