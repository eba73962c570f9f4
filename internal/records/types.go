package records

// Order is one delivery as it appears in the orders source.
type Order struct {
	Date           string `json:"date"`
	OrderID        string `json:"order_id"`
	OrderAmount    string `json:"order_amount"`
	Region         string `json:"region"`
	ItemsDelivered int    `json:"items_delivered"`
	ItemsMissing   int    `json:"items_missing"`
	DeliveryHour   string `json:"delivery_hour"`
	DriverID       string `json:"driver_id"`
	CustomerID     string `json:"customer_id"`
}

type Driver struct {
	DriverID   string `json:"driver_id"`
	DriverName string `json:"driver_name"`
	Age        int    `json:"age"`
	Trips      int    `json:"trips"`
}

type Product struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
}

type Customer struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	CustomerAge  int    `json:"customer_age"`
}

// MissingItem links an order to up to three products reported missing.
// An empty slot means no product was implicated there.
type MissingItem struct {
	OrderID    string `json:"order_id"`
	ProductID1 string `json:"product_id_1"`
	ProductID2 string `json:"product_id_2"`
	ProductID3 string `json:"product_id_3"`
}

// ProductIDs returns the non-empty product slots in order. A product named
// in two slots appears twice.
func (m MissingItem) ProductIDs() []string {
	ids := make([]string, 0, 3)
	for _, id := range []string{m.ProductID1, m.ProductID2, m.ProductID3} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Dataset bundles the five raw collections of one pipeline run.
type Dataset struct {
	Orders       []Order       `json:"orders"`
	Drivers      []Driver      `json:"drivers"`
	Products     []Product     `json:"products"`
	Customers    []Customer    `json:"customers"`
	MissingItems []MissingItem `json:"missingItems"`
}
