package simdata

import (
	"time"

	"github.com/shopspring/decimal"
)

// Daily shipment volume depends on the day of week, weekends run at
// roughly a third of weekday volume. Integer intervals are half-open.
const (
	weekdayShipmentCountMin = 150
	weekdayShipmentCountMax = 250
	weekendShipmentCountMin = 50
	weekendShipmentCountMax = 100

	shipmentQuantityMin = 50
	shipmentQuantityMax = 2000

	shipmentDelayProbability = 0.2
	shipmentDelayMin         = 1
	shipmentDelayMax         = 7

	shippingCostJitterMin = 0.8
	shippingCostJitterMax = 1.2

	moneyScale = 2
)

// Transport mode split: road carries most volume, air the least transit
// time at the highest per-unit cost.
const (
	transportShareAir = 0.15
	transportShareSea = 0.10
	// road and rail carry the remainder at 0.45 and 0.30.
	transportShareRoad = 0.45
)

// Per-mode transit time windows in days and per-unit cost windows.
const (
	airTransitMin  = 1
	airTransitMax  = 5
	seaTransitMin  = 15
	seaTransitMax  = 45
	roadTransitMin = 2
	roadTransitMax = 10
	railTransitMin = 5
	railTransitMax = 15

	airUnitCostMin  = 5.0
	airUnitCostMax  = 15.0
	seaUnitCostMin  = 0.5
	seaUnitCostMax  = 2.0
	roadUnitCostMin = 1.0
	roadUnitCostMax = 5.0
	railUnitCostMin = 1.0
	railUnitCostMax = 4.0
)

// ShipmentGenerator produces the outbound shipment records for one day at
// a time. Delivery status is judged against the reference clock: a
// shipment whose delivery falls after the reference instant is still in
// flight.
type ShipmentGenerator struct {
	universe       IdentifierUniverse
	rng            *RandomSource
	sequences      *SequenceSet
	referenceClock time.Time
}

// NewShipmentGenerator wires a generator to the run's shared identifier
// universe, random source, and sequence set.
func NewShipmentGenerator(
	universe IdentifierUniverse,
	rng *RandomSource,
	sequences *SequenceSet,
	referenceClock time.Time,
) *ShipmentGenerator {
	return &ShipmentGenerator{
		universe:       universe,
		rng:            rng,
		sequences:      sequences,
		referenceClock: referenceClock,
	}
}

// Generate produces a randomized number of shipments for the date, with
// the volume window chosen by day of week.
func (g *ShipmentGenerator) Generate(date time.Time) ShipmentRecords {
	return g.GenerateCount(date, g.drawDailyCount(date))
}

// GenerateCount produces exactly count shipments for the date.
func (g *ShipmentGenerator) GenerateCount(date time.Time, count int) ShipmentRecords {
	date = ToDateOnly(date)
	records := make(ShipmentRecords, 0, count)

	for range count {
		records = append(records, g.generateOne(date))
	}

	return records
}

func (g *ShipmentGenerator) drawDailyCount(date time.Time) int {
	if isWeekend(date) {
		return g.rng.IntBetween(weekendShipmentCountMin, weekendShipmentCountMax)
	}

	return g.rng.IntBetween(weekdayShipmentCountMin, weekdayShipmentCountMax)
}

func (g *ShipmentGenerator) generateOne(date time.Time) ShipmentRecord {
	orderID := g.sequences.NextOrderID(date.Year())
	shipmentID := g.sequences.NextShipmentID(date.Year())

	mode := g.drawTransportMode()
	transitDays := g.drawTransitDays(mode)
	quantity := g.rng.IntBetween(shipmentQuantityMin, shipmentQuantityMax)

	scheduledDelivery := date.AddDate(0, 0, transitDays)
	actualDelivery := scheduledDelivery
	delayDays := 0
	if g.rng.Probability(shipmentDelayProbability) {
		delayDays = g.rng.IntBetween(shipmentDelayMin, shipmentDelayMax)
		actualDelivery = scheduledDelivery.AddDate(0, 0, delayDays)
	}

	return ShipmentRecord{
		ShipmentID:            shipmentID,
		OrderID:               orderID,
		OriginWarehouse:       g.rng.PickString(g.universe.Warehouses()),
		DestinationLocation:   g.rng.PickString(DestinationLocations),
		ProductID:             g.rng.PickString(g.universe.Products()),
		Quantity:              quantity,
		ShipmentDate:          date.Format(DateLayout),
		ScheduledDeliveryDate: scheduledDelivery.Format(DateLayout),
		ActualDeliveryDate:    actualDelivery.Format(DateLayout),
		Carrier:               g.rng.PickString(Carriers),
		TransportationMode:    string(mode),
		ShippingCost:          g.drawShippingCost(mode, quantity),
		Status:                g.classifyStatus(actualDelivery, delayDays),
		DelayDays:             delayDays,
	}
}

func (g *ShipmentGenerator) drawTransportMode() TransportMode {
	draw := g.rng.Float64Between(0, 1)

	switch {
	case draw < transportShareAir:
		return TransportModeAir
	case draw < transportShareAir+transportShareSea:
		return TransportModeSea
	case draw < transportShareAir+transportShareSea+transportShareRoad:
		return TransportModeRoad
	default:
		return TransportModeRail
	}
}

func (g *ShipmentGenerator) drawTransitDays(mode TransportMode) int {
	switch mode {
	case TransportModeAir:
		return g.rng.IntBetween(airTransitMin, airTransitMax)
	case TransportModeSea:
		return g.rng.IntBetween(seaTransitMin, seaTransitMax)
	case TransportModeRail:
		return g.rng.IntBetween(railTransitMin, railTransitMax)
	default:
		return g.rng.IntBetween(roadTransitMin, roadTransitMax)
	}
}

func (g *ShipmentGenerator) drawShippingCost(mode TransportMode, quantity int) decimal.Decimal {
	var unitCost float64

	switch mode {
	case TransportModeAir:
		unitCost = g.rng.Float64Between(airUnitCostMin, airUnitCostMax)
	case TransportModeSea:
		unitCost = g.rng.Float64Between(seaUnitCostMin, seaUnitCostMax)
	case TransportModeRail:
		unitCost = g.rng.Float64Between(railUnitCostMin, railUnitCostMax)
	default:
		unitCost = g.rng.Float64Between(roadUnitCostMin, roadUnitCostMax)
	}

	jitter := g.rng.Float64Between(shippingCostJitterMin, shippingCostJitterMax)

	return decimal.NewFromFloat(float64(quantity) * unitCost * jitter).Round(moneyScale)
}

// classifyStatus judges a shipment against the reference clock. Delayed
// shipments that already arrived count as delivered, the delay survives
// only in the delay_days field.
func (g *ShipmentGenerator) classifyStatus(actualDelivery time.Time, delayDays int) string {
	if delayDays > 0 {
		if actualDelivery.After(g.referenceClock) {
			return ShipmentStatusDelayed
		}

		return ShipmentStatusDelivered
	}

	if actualDelivery.Before(g.referenceClock) {
		return ShipmentStatusDelivered
	}

	return ShipmentStatusInTransit
}

// isWeekend reports whether the date falls on Saturday or Sunday.
func isWeekend(date time.Time) bool {
	weekday := date.Weekday()

	return weekday == time.Saturday || weekday == time.Sunday
}
