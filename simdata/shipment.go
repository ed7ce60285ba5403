package simdata

import "github.com/shopspring/decimal"

// TransportMode is how a shipment travels from origin to destination.
// The mode determines both the transit time window and the per-unit cost.
type TransportMode string

const (
	TransportModeAir  TransportMode = "air"
	TransportModeSea  TransportMode = "sea"
	TransportModeRoad TransportMode = "road"
	TransportModeRail TransportMode = "rail"
)

// Shipment lifecycle states relative to the run's reference clock.
const (
	ShipmentStatusDelivered = "delivered"
	ShipmentStatusInTransit = "in_transit"
	ShipmentStatusDelayed   = "delayed"
)

// Carriers is the pool of logistics providers shipments are assigned to.
var Carriers = []string{
	"DHL Express",
	"FedEx",
	"UPS",
	"Maersk",
	"DB Schenker",
	"XPO Logistics",
	"C.H. Robinson",
	"Kuehne+Nagel",
	"DSV",
}

// DestinationLocations is the pool of customer destinations shipments are
// routed to.
var DestinationLocations = []string{
	"New York, NY, USA",
	"Los Angeles, CA, USA",
	"Chicago, IL, USA",
	"London, UK",
	"Paris, France",
	"Berlin, Germany",
	"Tokyo, Japan",
	"Shanghai, China",
	"Mumbai, India",
	"São Paulo, Brazil",
	"Toronto, Canada",
	"Sydney, Australia",
}

// ShipmentRecord is one outbound shipment from a warehouse to a customer
// destination. Dates are serialized in DateLayout form.
type ShipmentRecord struct {
	ShipmentID            string          `json:"shipment_id"`
	OrderID               string          `json:"order_id"`
	OriginWarehouse       string          `json:"origin_warehouse"`
	DestinationLocation   string          `json:"destination_location"`
	ProductID             string          `json:"product_id"`
	Quantity              int             `json:"quantity"`
	ShipmentDate          ISODateString   `json:"shipment_date"`
	ScheduledDeliveryDate ISODateString   `json:"scheduled_delivery_date"`
	ActualDeliveryDate    ISODateString   `json:"actual_delivery_date"`
	Carrier               string          `json:"carrier"`
	TransportationMode    string          `json:"transportation_mode"`
	ShippingCost          decimal.Decimal `json:"shipping_cost"`
	Status                string          `json:"status"`
	DelayDays             int             `json:"delay_days"`
}

// ShipmentRecords is a type alias for a slice of ShipmentRecord.
type ShipmentRecords = []ShipmentRecord
