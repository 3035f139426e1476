package format

import "github.com/shopspring/decimal"

// Direction is how a variance should be flagged on a report.
type Direction int

const (
	Neutral Direction = iota
	Favorable
	Unfavorable
)

func (d Direction) String() string {
	switch d {
	case Favorable:
		return "favorable"
	case Unfavorable:
		return "unfavorable"
	default:
		return "neutral"
	}
}

// Classify flags a variance by sign alone: positive is favorable,
// negative unfavorable.
func Classify(variance decimal.Decimal) Direction {
	switch variance.Sign() {
	case 1:
		return Favorable
	case -1:
		return Unfavorable
	default:
		return Neutral
	}
}

// ClassifyRevenue flags a revenue variance (actual - planned). Earning more
// than planned is favorable.
func ClassifyRevenue(variance decimal.Decimal) Direction {
	return Classify(variance)
}

// ClassifyCost flags a cost variance (actual - planned). Spending less than
// planned is favorable, so the sign is inverted.
func ClassifyCost(variance decimal.Decimal) Direction {
	return Classify(variance.Neg())
}
