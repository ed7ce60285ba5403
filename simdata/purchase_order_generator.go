package simdata

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order volume and pricing bounds. Integer intervals are
// half-open.
const (
	weekdayPurchaseOrderCountMin = 50
	weekdayPurchaseOrderCountMax = 100
	weekendPurchaseOrderCountMin = 10
	weekendPurchaseOrderCountMax = 30

	unitPriceMin = 5.0
	unitPriceMax = 500.0

	leadTimeDaysMin = 7
	leadTimeDaysMax = 60

	// Delivery outcome split: 80% completed, 15% delayed, 5% pending.
	completedShare = 0.80
	delayedShare   = 0.15

	completedDeltaMin = -3
	completedDeltaMax = 10
	delayedDeltaMin   = 5
	delayedDeltaMax   = 20
)

// purchaseOrderQuantities are the bulk order sizes suppliers accept.
var purchaseOrderQuantities = []int{500, 1000, 2500, 5000, 10000}

// PurchaseOrderGenerator produces the inbound purchase order records for
// one day at a time.
type PurchaseOrderGenerator struct {
	universe  IdentifierUniverse
	rng       *RandomSource
	sequences *SequenceSet
}

// NewPurchaseOrderGenerator wires a generator to the run's shared
// identifier universe, random source, and sequence set.
func NewPurchaseOrderGenerator(
	universe IdentifierUniverse,
	rng *RandomSource,
	sequences *SequenceSet,
) *PurchaseOrderGenerator {
	return &PurchaseOrderGenerator{
		universe:  universe,
		rng:       rng,
		sequences: sequences,
	}
}

// Generate produces a randomized number of purchase orders for the date,
// with the volume window chosen by day of week.
func (g *PurchaseOrderGenerator) Generate(date time.Time) PurchaseOrderRecords {
	return g.GenerateCount(date, g.drawDailyCount(date))
}

// GenerateCount produces exactly count purchase orders for the date.
func (g *PurchaseOrderGenerator) GenerateCount(date time.Time, count int) PurchaseOrderRecords {
	date = ToDateOnly(date)
	records := make(PurchaseOrderRecords, 0, count)

	for range count {
		records = append(records, g.generateOne(date))
	}

	return records
}

func (g *PurchaseOrderGenerator) drawDailyCount(date time.Time) int {
	if isWeekend(date) {
		return g.rng.IntBetween(weekendPurchaseOrderCountMin, weekendPurchaseOrderCountMax)
	}

	return g.rng.IntBetween(weekdayPurchaseOrderCountMin, weekdayPurchaseOrderCountMax)
}

func (g *PurchaseOrderGenerator) generateOne(date time.Time) PurchaseOrderRecord {
	quantity := g.rng.PickInt(purchaseOrderQuantities)
	unitPrice := decimal.NewFromFloat(g.rng.Float64Between(unitPriceMin, unitPriceMax)).Round(moneyScale)
	totalCost := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(moneyScale)

	expectedDelivery := date.AddDate(0, 0, g.rng.IntBetween(leadTimeDaysMin, leadTimeDaysMax))
	status, actualDelivery, delayDays := g.drawDeliveryOutcome(expectedDelivery)

	return PurchaseOrderRecord{
		POID:                 g.sequences.NextPurchaseOrderID(date.Year()),
		SupplierID:           g.rng.PickString(g.universe.Suppliers()),
		ProductID:            g.rng.PickString(g.universe.Products()),
		OrderDate:            date.Format(DateLayout),
		QuantityOrdered:      quantity,
		UnitPrice:            unitPrice,
		TotalCost:            totalCost,
		ExpectedDeliveryDate: expectedDelivery.Format(DateLayout),
		ActualDeliveryDate:   actualDelivery,
		OrderStatus:          status,
		DelayDays:            delayDays,
	}
}

// drawDeliveryOutcome settles how the order resolves. Completed orders can
// land a few days early, so their delay can be negative. Pending orders
// have no actual delivery date yet.
func (g *PurchaseOrderGenerator) drawDeliveryOutcome(
	expectedDelivery time.Time,
) (status string, actualDelivery *ISODateString, delayDays int) {
	draw := g.rng.Float64Between(0, 1)

	switch {
	case draw < completedShare:
		delayDays = g.rng.IntBetween(completedDeltaMin, completedDeltaMax)
		status = PurchaseOrderStatusCompleted
	case draw < completedShare+delayedShare:
		delayDays = g.rng.IntBetween(delayedDeltaMin, delayedDeltaMax)
		status = PurchaseOrderStatusDelayed
	default:
		return PurchaseOrderStatusPending, nil, 0
	}

	delivered := expectedDelivery.AddDate(0, 0, delayDays).Format(DateLayout)

	return status, &delivered, delayDays
}
