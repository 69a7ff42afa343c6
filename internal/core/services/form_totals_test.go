package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"wealthdesk/internal/core/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTotals_AllEmptyIsZero(t *testing.T) {
	t.Parallel()

	agg := domain.NewFormAggregate()
	totals := ComputeTotals(agg)

	require.True(t, totals.TotalMonthlyIncome.IsZero())
	require.True(t, totals.TotalAnnualIncome.IsZero())
	require.True(t, totals.TotalExpenses.IsZero())
	require.True(t, totals.ResidualAvailable.IsZero())
}

func TestTotals_DecimalStringsSumExactly(t *testing.T) {
	t.Parallel()

	agg := domain.NewFormAggregate()
	agg.Income.SelfMonthly = "100.50"
	agg.Income.SpouseMonthly = "200.25"
	agg.Income.OtherMonthly = ""

	got := TotalMonthlyIncome(agg)
	require.True(t, got.Equal(d("300.75")), "got %s", got)
}

func TestTotals_UnparsableAmountCountsAsZero(t *testing.T) {
	t.Parallel()

	agg := domain.NewFormAggregate()
	agg.Income.SelfMonthly = "1000"
	agg.Income.SpouseMonthly = "abc"

	got := TotalMonthlyIncome(agg)
	require.True(t, got.Equal(d("1000")), "got %s", got)
}

func TestResidualAvailable_Formula(t *testing.T) {
	t.Parallel()

	agg := domain.NewFormAggregate()
	agg.Income.SelfMonthly = "80000"
	agg.Expenses.Household = "20000"
	agg.Expenses.Rent = "15000"
	agg.Residual.Buffer = "5000"
	agg.Residual.Others = "2000"

	// 80000 - 35000 - 5000 - 2000
	got := ResidualAvailable(agg)
	require.True(t, got.Equal(d("38000")), "got %s", got)
}

func TestResidualAvailable_CanGoNegative(t *testing.T) {
	t.Parallel()

	agg := domain.NewFormAggregate()
	agg.Income.SelfMonthly = "1000"
	agg.Expenses.Rent = "1500"

	got := ResidualAvailable(agg)
	require.True(t, got.Equal(d("-500")), "got %s", got)
}

func TestExpenseBreakdown_PercentagesRounded(t *testing.T) {
	t.Parallel()

	agg := domain.NewFormAggregate()
	agg.Expenses.Household = "1000"
	agg.Expenses.Rent = "2000"

	shares := ExpenseBreakdown(agg)
	require.Len(t, shares, 9)

	byName := map[string]ExpenseShare{}
	for _, s := range shares {
		byName[s.Name] = s
	}
	require.True(t, byName["household"].Percent.Equal(d("33.33")), "got %s", byName["household"].Percent)
	require.True(t, byName["rent"].Percent.Equal(d("66.67")), "got %s", byName["rent"].Percent)
	require.True(t, byName["emi"].Percent.IsZero())
}

func TestExpenseBreakdown_ZeroTotalHasZeroPercents(t *testing.T) {
	t.Parallel()

	shares := ExpenseBreakdown(domain.NewFormAggregate())
	for _, s := range shares {
		require.True(t, s.Percent.IsZero(), "%s percent should be zero", s.Name)
	}
}

func TestAssetAllocation_Buckets(t *testing.T) {
	t.Parallel()

	agg := domain.NewFormAggregate()
	agg.DetailedAssets = []domain.DetailedAsset{
		{SrNo: 1, AssetType: "EPF", CurrentValue: "100000"},
		{SrNo: 2, AssetType: "Stocks", CurrentValue: "50000"},
		{SrNo: 3, AssetType: "Life Insurance", CurrentValue: "25000"},
		{SrNo: 4, AssetType: "Fixed Deposit", CurrentValue: "75000"},
	}

	alloc := AssetAllocation(agg)
	require.True(t, alloc.Debt.Equal(d("175000")), "debt %s", alloc.Debt)
	require.True(t, alloc.Equity.Equal(d("50000")), "equity %s", alloc.Equity)
	require.True(t, alloc.Insurance.Equal(d("25000")), "insurance %s", alloc.Insurance)
	require.True(t, alloc.Total.Equal(d("250000")), "total %s", alloc.Total)
	require.True(t, alloc.DebtPercent.Equal(d("70")), "debt%% %s", alloc.DebtPercent)
	require.True(t, alloc.EquityPercent.Equal(d("20")), "equity%% %s", alloc.EquityPercent)
	require.True(t, alloc.InsurancePercent.Equal(d("10")), "insurance%% %s", alloc.InsurancePercent)
}

func TestAssetAllocation_FallsBackToDetailsField(t *testing.T) {
	t.Parallel()

	agg := domain.NewFormAggregate()
	agg.DetailedAssets = []domain.DetailedAsset{
		{SrNo: 1, AssetType: "Other", AssetDetails: "PPF", CurrentValue: "40000"},
	}

	alloc := AssetAllocation(agg)
	require.True(t, alloc.Debt.Equal(d("40000")), "debt %s", alloc.Debt)
}

func TestAssetAllocation_UnmatchedRowsExcluded(t *testing.T) {
	t.Parallel()

	agg := domain.NewFormAggregate()
	agg.DetailedAssets = []domain.DetailedAsset{
		{SrNo: 1, AssetType: "EPF", CurrentValue: "1000"},
		{SrNo: 2, AssetType: "Vintage Cars", AssetDetails: "Garage", CurrentValue: "999999"},
	}

	alloc := AssetAllocation(agg)
	require.True(t, alloc.Total.Equal(d("1000")), "total %s", alloc.Total)
}
