package simdata_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

func buildPurchaseOrderGenerator(t *testing.T, seed int64) *simdata.PurchaseOrderGenerator {
	t.Helper()

	universe, err := simdata.BuildIdentifierUniverse(10, 4, 5)
	require.NoError(t, err)

	return simdata.NewPurchaseOrderGenerator(
		universe,
		simdata.NewRandomSource(seed),
		simdata.NewSequenceSet(),
	)
}

//nolint:funlen
func Test_PurchaseOrderGenerator_RecordsHonorAllValueWindows(t *testing.T) {
	date := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	generator := buildPurchaseOrderGenerator(t, 42)

	records := generator.GenerateCount(date, 300)
	require.Len(t, records, 300)

	seenStatuses := map[string]bool{}

	for i, record := range records {
		assert.Equal(t, fmt.Sprintf("PO-2024-%06d", i+1), record.POID)
		assert.Contains(t, []string{"SUP-001", "SUP-002", "SUP-003", "SUP-004", "SUP-005"}, record.SupplierID)
		assert.Equal(t, "2024-03-18", record.OrderDate)

		assert.Contains(t, []int{500, 1000, 2500, 5000, 10000}, record.QuantityOrdered)

		unitPrice := record.UnitPrice.InexactFloat64()
		assert.GreaterOrEqual(t, unitPrice, 5.0)
		assert.LessOrEqual(t, unitPrice, 500.0)

		expectedTotal := record.UnitPrice.
			Mul(decimal.NewFromInt(int64(record.QuantityOrdered))).
			Round(2)
		assert.True(t, record.TotalCost.Equal(expectedTotal),
			"total cost %s != unit price %s * quantity %d",
			record.TotalCost, record.UnitPrice, record.QuantityOrdered)

		expected, err := time.Parse(simdata.DateLayout, record.ExpectedDeliveryDate)
		require.NoError(t, err)

		leadDays := int(expected.Sub(date).Hours() / 24)
		assert.GreaterOrEqual(t, leadDays, 7)
		assert.Less(t, leadDays, 60)

		seenStatuses[record.OrderStatus] = true

		switch record.OrderStatus {
		case "completed":
			require.NotNil(t, record.ActualDeliveryDate)
			assert.GreaterOrEqual(t, record.DelayDays, -3)
			assert.Less(t, record.DelayDays, 10)
			assert.Equal(t,
				expected.AddDate(0, 0, record.DelayDays).Format(simdata.DateLayout),
				*record.ActualDeliveryDate)
		case "delayed":
			require.NotNil(t, record.ActualDeliveryDate)
			assert.GreaterOrEqual(t, record.DelayDays, 5)
			assert.Less(t, record.DelayDays, 20)
			assert.Equal(t,
				expected.AddDate(0, 0, record.DelayDays).Format(simdata.DateLayout),
				*record.ActualDeliveryDate)
		case "pending":
			assert.Nil(t, record.ActualDeliveryDate)
			assert.Zero(t, record.DelayDays)
		default:
			t.Fatalf("unexpected order status %q", record.OrderStatus)
		}
	}

	// 300 draws at an 80/15/5 split produce all three outcomes.
	assert.True(t, seenStatuses["completed"])
	assert.True(t, seenStatuses["delayed"])
	assert.True(t, seenStatuses["pending"])
}

func Test_PurchaseOrderGenerator_PendingOrdersSerializeNullDeliveryDate(t *testing.T) {
	date := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	generator := buildPurchaseOrderGenerator(t, 42)

	var pending *simdata.PurchaseOrderRecord

	for _, record := range generator.GenerateCount(date, 300) {
		if record.OrderStatus == "pending" {
			pending = &record
			break
		}
	}

	require.NotNil(t, pending, "expected at least one pending order in 300 draws")

	payload, err := json.Marshal(pending)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"actual_delivery_date":null`)
}

func Test_PurchaseOrderGenerator_DailyVolumeFollowsDayOfWeek(t *testing.T) {
	monday := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	weekdayRecords := buildPurchaseOrderGenerator(t, 42).Generate(monday)
	assert.GreaterOrEqual(t, len(weekdayRecords), 50)
	assert.Less(t, len(weekdayRecords), 100)

	saturday := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	weekendRecords := buildPurchaseOrderGenerator(t, 42).Generate(saturday)
	assert.GreaterOrEqual(t, len(weekendRecords), 10)
	assert.Less(t, len(weekendRecords), 30)
}

func Test_PurchaseOrderGenerator_SameSeedGivesIdenticalRecords(t *testing.T) {
	date := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

	first := buildPurchaseOrderGenerator(t, 42).GenerateCount(date, 50)
	second := buildPurchaseOrderGenerator(t, 42).GenerateCount(date, 50)

	assert.Equal(t, first, second)
}
