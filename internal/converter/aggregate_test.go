package converter

import (
	"math"
	"testing"
	"time"

	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(stocks ...stock) []types.InventoryRow {
	out := make([]types.InventoryRow, len(stocks))
	for i, s := range stocks {
		out[i] = types.InventoryRow{Location: s[0], SKU: s[1], OnHandCurrent: s[2], RowNumber: i + 2}
	}
	return out
}

func mustAggregate(t *testing.T, input []types.InventoryRow, locations []string) []types.AggregatedLine {
	t.Helper()
	lines, err := Aggregate(input, locations)
	require.NoError(t, err)
	return lines
}

func TestCoerceQuantity(t *testing.T) {
	tests := []struct {
		raw    string
		value  int64
		parsed bool
		reason types.ZeroReason
	}{
		{"5", 5, true, types.ReasonNone},
		{" 12 ", 12, true, types.ReasonNone},
		{"3.7", 3, true, types.ReasonNone},
		{"-3.7", -3, true, types.ReasonNone},
		{"-2", -2, true, types.ReasonNone},
		{"+4", 4, true, types.ReasonNone},
		{"1e2", 100, true, types.ReasonNone},
		{"0", 0, true, types.ReasonNone},
		{"", 0, false, types.ReasonEmpty},
		{"   ", 0, false, types.ReasonEmpty},
		{"not stocked", 0, false, types.ReasonNotStocked},
		{"Not Stocked", 0, false, types.ReasonNotStocked},
		{"abc", 0, false, types.ReasonNotNumeric},
		{"1,000", 0, false, types.ReasonNotNumeric},
		{"0.5", 0, true, types.ReasonNone},
		{"-0.9", 0, true, types.ReasonNone},
		{"0e999999999", 0, true, types.ReasonNone},
		{"1e-999999999", 0, true, types.ReasonNone},
		{"9223372036854775807", math.MaxInt64, true, types.ReasonNone},
		{"-9223372036854775808", math.MinInt64, true, types.ReasonNone},
		{"9223372036854775807.9", math.MaxInt64, true, types.ReasonNone},
		{"9223372036854775808", 0, false, types.ReasonOutOfRange},
		{"99999999999999999999", 0, false, types.ReasonOutOfRange},
		{"-1e19", 0, false, types.ReasonOutOfRange},
		{"1e200000000", 0, false, types.ReasonOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q := CoerceQuantity(tt.raw)
			assert.Equal(t, tt.value, q.Value)
			assert.Equal(t, tt.parsed, q.Parsed)
			assert.Equal(t, tt.reason, q.Reason)
			assert.Equal(t, tt.parsed || tt.reason == types.ReasonOutOfRange, IsNumeric(tt.raw))
		})
	}
}

func TestAggregateSumsAcrossLocations(t *testing.T) {
	lines := mustAggregate(t, rows(
		stock{"A", "X", "5"},
		stock{"B", "X", "3"},
		stock{"A", "Y", "not stocked"},
	), []string{"A", "B"})

	assert.Equal(t, []types.AggregatedLine{
		{SKU: "X", Quantity: 8},
		{SKU: "Y", Quantity: 0},
	}, lines)
}

func TestAggregateFirstAppearanceOrder(t *testing.T) {
	lines := mustAggregate(t, rows(
		stock{"C", "Z", "1"},
		stock{"A", "B", "1"},
		stock{"A", "Z", "1"},
		stock{"B", "A", "1"},
		stock{"C", "B", "1"},
	), []string{"A", "B"})

	var skus []string
	for _, l := range lines {
		skus = append(skus, l.SKU)
	}
	assert.Equal(t, []string{"B", "Z", "A"}, skus)
}

func TestAggregateIgnoresUnselectedLocations(t *testing.T) {
	lines := mustAggregate(t, rows(
		stock{"A", "X", "5"},
		stock{"B", "X", "100"},
		stock{"B", "W", "7"},
	), []string{"A"})

	assert.Equal(t, []types.AggregatedLine{{SKU: "X", Quantity: 5}}, lines)
}

func TestAggregateKeepsNegatives(t *testing.T) {
	lines := mustAggregate(t, rows(
		stock{"A", "X", "-4"},
		stock{"B", "X", "1"},
	), []string{"A", "B"})

	assert.Equal(t, []types.AggregatedLine{{SKU: "X", Quantity: -3}}, lines)
}

func TestAggregateEmptySKUIsALine(t *testing.T) {
	lines := mustAggregate(t, rows(
		stock{"A", "", "2"},
		stock{"A", "", "1"},
	), []string{"A"})

	assert.Equal(t, []types.AggregatedLine{{SKU: "", Quantity: 3}}, lines)
}

func TestAggregateRejectsOutOfRangeCell(t *testing.T) {
	_, err := Aggregate(rows(
		stock{"A", "X", "1"},
		stock{"A", "Y", "99999999999999999999"},
	), []string{"A"})

	assert.ErrorIs(t, err, ErrQuantityOutOfRange)
	assert.Contains(t, err.Error(), `SKU "Y"`)
}

func TestAggregateIgnoresOutOfRangeCellAtOtherLocation(t *testing.T) {
	lines := mustAggregate(t, rows(
		stock{"A", "X", "1"},
		stock{"B", "X", "1e200000000"},
	), []string{"A"})

	assert.Equal(t, []types.AggregatedLine{{SKU: "X", Quantity: 1}}, lines)
}

func TestAggregateRejectsOverflowingSum(t *testing.T) {
	tests := []struct {
		name  string
		input []types.InventoryRow
	}{
		{"per sku positive", rows(stock{"A", "X", "9223372036854775807"}, stock{"B", "X", "1"})},
		{"per sku negative", rows(stock{"A", "X", "-9223372036854775808"}, stock{"B", "X", "-1"})},
		{"across skus", rows(stock{"A", "X", "9223372036854775807"}, stock{"B", "Y", "1"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate(tt.input, []string{"A", "B"})
			assert.ErrorIs(t, err, ErrQuantityOutOfRange)
		})
	}
}

func TestAggregateEmptyInputs(t *testing.T) {
	assert.Empty(t, mustAggregate(t, nil, []string{"A"}))
	assert.Empty(t, mustAggregate(t, rows(stock{"A", "X", "1"}), nil))
	assert.Empty(t, mustAggregate(t, rows(stock{"A", "X", "1"}), []string{"Nowhere"}))
}

func TestAggregateConservesTotals(t *testing.T) {
	input := rows(
		stock{"A", "X", "5"},
		stock{"B", "Y", "2.5"},
		stock{"A", "Y", "abc"},
		stock{"C", "X", "9"},
		stock{"B", "Z", "-1"},
	)
	selected := []string{"A", "B"}

	lines, stats, err := aggregate(input, selected)
	require.NoError(t, err)

	var want int64
	for _, r := range input {
		if r.Location == "A" || r.Location == "B" {
			want += CoerceQuantity(r.OnHandCurrent).Value
		}
	}
	var got int64
	for _, l := range lines {
		got += l.Quantity
	}

	assert.Equal(t, want, got)
	assert.Equal(t, want, stats.TotalUnits)
	assert.Equal(t, 4, stats.FilteredRows)
	assert.Equal(t, 1, stats.NonNumeric)
	assert.Equal(t, 5, stats.RowsLoaded)
}

func TestLocationCandidates(t *testing.T) {
	candidates := LocationCandidates(rows(
		stock{"Outlet", "X", "not stocked"},
		stock{"Main", "X", "1"},
		stock{"Outlet", "Y", ""},
		stock{"Depot", "Z", "0"},
	))

	assert.Equal(t, []types.LocationCandidate{
		{Name: "Depot", HasStock: true},
		{Name: "Main", HasStock: true},
		{Name: "Outlet", HasStock: false},
	}, candidates)
}

func TestDiscoverLocations(t *testing.T) {
	locations, err := DiscoverLocations(rows(
		stock{"B", "X", "1"},
		stock{"A", "X", "-2"},
		stock{"B", "Y", "3"},
		stock{"C", "Y", "not stocked"},
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, locations)

	_, err = DiscoverLocations(rows(stock{"A", "X", "not stocked"}))
	assert.ErrorIs(t, err, ErrNoLocations)

	_, err = DiscoverLocations(nil)
	assert.ErrorIs(t, err, ErrNoLocations)

	locations, err = DiscoverLocations(rows(stock{"Huge", "X", "1e200000000"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Huge"}, locations)
}

func TestFormatExpectedDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "03/05/2024 12:00:00"},
		{time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), "12/31/2025 12:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatExpectedDate(tt.in))
	}
}

func TestBuildRecords(t *testing.T) {
	req := types.PurchaseOrderRequest{
		POName:         "  PO7 ",
		Warehouse:      "NYC Warehouse",
		Customer:       " Acme ",
		ExpectedDate:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		TrackingNumber: " T1 ",
		TrackingURL:    "https://track.example/T1",
	}

	records := BuildRecords([]types.AggregatedLine{{SKU: "X", Quantity: 4}, {SKU: "Y", Quantity: 0}}, req)

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "PO7", r.PurchaseOrderNumber)
		assert.Equal(t, "Pending", r.Status)
		assert.Equal(t, "NYC Warehouse", r.Warehouse)
		assert.Equal(t, "Acme", r.Customer)
		assert.Equal(t, "01/02/2024 12:00:00", r.ExpectedAt)
		assert.Equal(t, "T1", r.TrackingNumber)
		assert.Equal(t, "https://track.example/T1", r.TrackingURL)
		assert.Empty(t, r.Supplier)
		assert.Empty(t, r.QuantitySellAhead)
		assert.Empty(t, r.OrderedAt)
	}
	assert.Equal(t, "X", records[0].SKU)
	assert.Equal(t, int64(4), records[0].Quantity)

	assert.Empty(t, BuildRecords(nil, req))
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "ABC_PO_0001_packiyo_po.csv", OutputFileName(" ABC_PO_0001 "))
}
