// Package seed holds the demo catalogue the service starts with when no database is
// configured.
package seed

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

const salesDays = 30

var salesStart = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

func Suppliers() []models.Supplier {
	return []models.Supplier{
		{ID: "sup1", Name: "Global Tech Distribution", Contact: "+91 9876543210", Email: "sales@globaltech.com", Category: "Electronics", Rating: 4.8},
		{ID: "sup2", Name: "Premium Mobiles North", Contact: "+91 8887776665", Email: "b2b@premium.in", Category: "Mobile", Rating: 4.5},
		{ID: "sup3", Name: "Gadget Wholesale Hub", Contact: "+91 7776665554", Email: "orders@gadgethub.com", Category: "Accessories", Rating: 4.9},
		{ID: "sup4", Name: "Digital Solutions Ent", Contact: "+91 6665554443", Email: "procure@digisol.com", Category: "IT Hardware", Rating: 4.2},
	}
}

type entry struct {
	product    models.Product
	supplier   int
	base       float64
	volatility float64
}

var entries = []entry{
	{models.Product{ID: "ELEC001", Name: "Apple iPhone 15", Category: "Electronics", CurrentStock: 120, MinStock: 40, MaxStock: 300, Price: 71999, LeadTime: 3, Location: models.LocationNorth,
		ImageURL: "https://images.unsplash.com/photo-1696446701796-da61225697cc?auto=format&fit=crop&q=80&w=400"}, 1, 25, 10},
	{models.Product{ID: "ELEC002", Name: "Samsung Galaxy S23", Category: "Electronics", CurrentStock: 95, MinStock: 30, MaxStock: 250, Price: 65999, LeadTime: 5, Location: models.LocationSouth,
		ImageURL: "https://images.unsplash.com/photo-1678911820864-e2c567c655d7?auto=format&fit=crop&q=80&w=400"}, 1, 20, 8},
	{models.Product{ID: "ELEC003", Name: "OnePlus 11 5G", Category: "Electronics", CurrentStock: 150, MinStock: 50, MaxStock: 400, Price: 50999, LeadTime: 4, Location: models.LocationWest,
		ImageURL: "https://images.unsplash.com/photo-1674482326194-633096b79c3a?auto=format&fit=crop&q=80&w=400"}, 0, 18, 6},
	{models.Product{ID: "ELEC004", Name: "Xiaomi Redmi Note 13 Pro", Category: "Electronics", CurrentStock: 300, MinStock: 100, MaxStock: 800, Price: 19999, LeadTime: 7, Location: models.LocationEast,
		ImageURL: "https://images.unsplash.com/photo-1695484803914-949437175949?auto=format&fit=crop&q=80&w=400"}, 0, 45, 20},
	{models.Product{ID: "ELEC006", Name: "Sony WH-1000XM5 Headphones", Category: "Accessories", CurrentStock: 80, MinStock: 20, MaxStock: 150, Price: 26999, LeadTime: 10, Location: models.LocationNorth,
		ImageURL: "https://images.unsplash.com/photo-1661347333292-6277e9974278?auto=format&fit=crop&q=80&w=400"}, 2, 12, 4},
	{models.Product{ID: "ELEC007", Name: "Dell Inspiron 15 Laptop", Category: "IT Hardware", CurrentStock: 60, MinStock: 15, MaxStock: 100, Price: 53999, LeadTime: 14, Location: models.LocationSouth,
		ImageURL: "https://images.unsplash.com/photo-1593642702821-c8da6771f0c6?auto=format&fit=crop&q=80&w=400"}, 3, 8, 3},
	{models.Product{ID: "ELEC010", Name: "Boat Airdopes 441 TWS", Category: "Personal Audio", CurrentStock: 500, MinStock: 150, MaxStock: 1500, Price: 2249, LeadTime: 2, Location: models.LocationWest,
		ImageURL: "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?auto=format&fit=crop&q=80&w=400"}, 2, 60, 25},
}

// Products returns the demo catalogue. Sales history is generated from seed, so the
// same seed always yields the same catalogue.
func Products(seed uint64) []models.Product {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	suppliers := Suppliers()

	out := make([]models.Product, len(entries))
	for i, e := range entries {
		p := e.product
		sup := suppliers[e.supplier]
		p.Supplier = &sup
		p.HistoricalSales = Sales(rng, e.base, e.volatility)
		out[i] = p
	}
	return out
}

// Sales generates one month of daily sales around base. Quantities never go negative.
func Sales(rng *rand.Rand, base, volatility float64) []models.SalesPoint {
	points := make([]models.SalesPoint, salesDays)
	for i := range points {
		q := math.Floor(base + (rng.Float64()-0.5)*volatility)
		points[i] = models.SalesPoint{
			Date:     salesStart.AddDate(0, 0, i).Format(time.DateOnly),
			Quantity: int(math.Max(0, q)),
		}
	}
	return points
}
