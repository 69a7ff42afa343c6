package services

import (
	"github.com/shopspring/decimal"

	"wealthdesk/internal/core/domain"
)

// Derived totals are recomputed on every read and never stored.

// Allocation buckets for detailed assets
const (
	BucketDebt      = "debt"
	BucketEquity    = "equity"
	BucketInsurance = "insurance"
)

// assetBuckets classifies detailed-asset rows by asset type. Rows whose
// type is not listed fall back to a match on the details field, then are
// left out of the allocation entirely.
var assetBuckets = map[string]string{
	"EPF":                BucketDebt,
	"PPF":                BucketDebt,
	"Fixed Deposit":      BucketDebt,
	"Recurring Deposit":  BucketDebt,
	"Bonds":              BucketDebt,
	"Debt Mutual Fund":   BucketDebt,
	"NSC":                BucketDebt,
	"Stocks":             BucketEquity,
	"Equity Mutual Fund": BucketEquity,
	"ELSS":               BucketEquity,
	"Index Fund":         BucketEquity,
	"Life Insurance":     BucketInsurance,
	"ULIP":               BucketInsurance,
	"Endowment":          BucketInsurance,
}

// ExpenseShare is one expense row with its share of the total
type ExpenseShare struct {
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

// Allocation is the debt/equity/insurance split of the detailed assets
type Allocation struct {
	Debt             decimal.Decimal `json:"debt"`
	Equity           decimal.Decimal `json:"equity"`
	Insurance        decimal.Decimal `json:"insurance"`
	Total            decimal.Decimal `json:"total"`
	DebtPercent      decimal.Decimal `json:"debt_percent"`
	EquityPercent    decimal.Decimal `json:"equity_percent"`
	InsurancePercent decimal.Decimal `json:"insurance_percent"`
}

// FormTotals bundles every derived value for one aggregate
type FormTotals struct {
	TotalMonthlyIncome decimal.Decimal `json:"total_monthly_income"`
	TotalAnnualIncome  decimal.Decimal `json:"total_annual_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	ResidualAvailable  decimal.Decimal `json:"residual_available"`
	ExpenseBreakdown   []ExpenseShare  `json:"expense_breakdown"`
	AssetAllocation    Allocation      `json:"asset_allocation"`
}

// parseAmount parses a decimal string, treating empty or unparsable input
// as zero
func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func sumAmounts(values ...string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(parseAmount(v))
	}
	return total
}

// TotalMonthlyIncome sums the monthly income fields
func TotalMonthlyIncome(agg *domain.FormAggregate) decimal.Decimal {
	return sumAmounts(agg.Income.SelfMonthly, agg.Income.SpouseMonthly, agg.Income.OtherMonthly)
}

// TotalAnnualIncome sums the annual income fields
func TotalAnnualIncome(agg *domain.FormAggregate) decimal.Decimal {
	return sumAmounts(agg.Income.SelfAnnual, agg.Income.SpouseAnnual, agg.Income.OtherAnnual)
}

// TotalExpenses sums every expense field
func TotalExpenses(agg *domain.FormAggregate) decimal.Decimal {
	e := agg.Expenses
	return sumAmounts(e.Household, e.Rent, e.EMI, e.Insurance, e.Education,
		e.Transport, e.Medical, e.Lifestyle, e.Others)
}

// ResidualAvailable is what remains of the monthly income after expenses,
// the buffer and other set-asides
func ResidualAvailable(agg *domain.FormAggregate) decimal.Decimal {
	return TotalMonthlyIncome(agg).
		Sub(TotalExpenses(agg)).
		Sub(parseAmount(agg.Residual.Buffer)).
		Sub(parseAmount(agg.Residual.Others))
}

// ExpenseBreakdown returns every expense row with its percentage of the
// total. Percentages are zero when the total is zero.
func ExpenseBreakdown(agg *domain.FormAggregate) []ExpenseShare {
	e := agg.Expenses
	rows := []struct {
		name  string
		value string
	}{
		{"household", e.Household},
		{"rent", e.Rent},
		{"emi", e.EMI},
		{"insurance", e.Insurance},
		{"education", e.Education},
		{"transport", e.Transport},
		{"medical", e.Medical},
		{"lifestyle", e.Lifestyle},
		{"others", e.Others},
	}

	total := TotalExpenses(agg)
	hundred := decimal.NewFromInt(100)

	shares := make([]ExpenseShare, 0, len(rows))
	for _, row := range rows {
		amount := parseAmount(row.value)
		percent := decimal.Zero
		if !total.IsZero() {
			percent = amount.Div(total).Mul(hundred).Round(2)
		}
		shares = append(shares, ExpenseShare{
			Name:    row.name,
			Amount:  amount,
			Percent: percent,
		})
	}
	return shares
}

// AssetAllocation computes the debt/equity/insurance split across the
// detailed-asset rows. Rows that match no bucket do not count toward the
// grand total.
func AssetAllocation(agg *domain.FormAggregate) Allocation {
	alloc := Allocation{
		Debt:      decimal.Zero,
		Equity:    decimal.Zero,
		Insurance: decimal.Zero,
	}

	for _, asset := range agg.DetailedAssets {
		bucket, ok := assetBuckets[asset.AssetType]
		if !ok {
			bucket, ok = assetBuckets[asset.AssetDetails]
		}
		if !ok {
			continue
		}
		value := parseAmount(asset.CurrentValue)
		switch bucket {
		case BucketDebt:
			alloc.Debt = alloc.Debt.Add(value)
		case BucketEquity:
			alloc.Equity = alloc.Equity.Add(value)
		case BucketInsurance:
			alloc.Insurance = alloc.Insurance.Add(value)
		}
	}

	alloc.Total = alloc.Debt.Add(alloc.Equity).Add(alloc.Insurance)
	alloc.DebtPercent = percentOf(alloc.Debt, alloc.Total)
	alloc.EquityPercent = percentOf(alloc.Equity, alloc.Total)
	alloc.InsurancePercent = percentOf(alloc.Insurance, alloc.Total)
	return alloc
}

func percentOf(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
}

// ComputeTotals returns every derived value for the aggregate in one call
func ComputeTotals(agg *domain.FormAggregate) *FormTotals {
	return &FormTotals{
		TotalMonthlyIncome: TotalMonthlyIncome(agg),
		TotalAnnualIncome:  TotalAnnualIncome(agg),
		TotalExpenses:      TotalExpenses(agg),
		ResidualAvailable:  ResidualAvailable(agg),
		ExpenseBreakdown:   ExpenseBreakdown(agg),
		AssetAllocation:    AssetAllocation(agg),
	}
}
