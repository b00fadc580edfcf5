package models

import "strings"

// Location is one of the four regional hubs where stock physically resides.
type Location string

const (
	LocationNorth Location = "North"
	LocationSouth Location = "South"
	LocationEast  Location = "East"
	LocationWest  Location = "West"
)

// Locations lists every hub in display order.
var Locations = []Location{LocationNorth, LocationSouth, LocationEast, LocationWest}

// Valid reports whether l is one of the four enumerated hubs.
func (l Location) Valid() bool {
	switch l {
	case LocationNorth, LocationSouth, LocationEast, LocationWest:
		return true
	}
	return false
}

// SalesPoint is one day of historical sales.
type SalesPoint struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

// Supplier is referenced by products, never owned by them.
type Supplier struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Contact  string  `json:"contact"`
	Email    string  `json:"email"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// Product represents a product entity in the inventory system.
type Product struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Category        string       `json:"category"`
	CurrentStock    int          `json:"current_stock"`
	MinStock        int          `json:"min_stock"`
	MaxStock        int          `json:"max_stock"`
	Price           float64      `json:"price"`
	LeadTime        int          `json:"lead_time"`
	Location        Location     `json:"location"`
	HistoricalSales []SalesPoint `json:"historical_sales,omitempty"`
	Supplier        *Supplier    `json:"supplier,omitempty"`
	ImageURL        string       `json:"image_url,omitempty"`
}

// AverageSales returns the mean daily quantity over the recorded history, 0 without history.
func (p Product) AverageSales() float64 {
	if len(p.HistoricalSales) == 0 {
		return 0
	}
	total := 0
	for _, s := range p.HistoricalSales {
		total += s.Quantity
	}
	return float64(total) / float64(len(p.HistoricalSales))
}

// Clone returns a copy that shares no slices with p. The supplier pointer is still shared.
func (p Product) Clone() Product {
	c := p
	if p.HistoricalSales != nil {
		c.HistoricalSales = append([]SalesPoint(nil), p.HistoricalSales...)
	}
	return c
}

// ParseLocation matches a hub name case-insensitively.
func ParseLocation(s string) (Location, bool) {
	for _, l := range Locations {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, true
		}
	}
	return Location(s), false
}
