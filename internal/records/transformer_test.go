package records

import (
	"reflect"
	"testing"

	"delivery-risk/internal/tabular"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"42", 42},
		{"  7", 7},
		{"12abc", 12},
		{"3.9", 3},
		{"-4", -4},
		{"+5", 5},
		{"abc", 0},
		{"-", 0},
		{"99999999999999999999999", 0},
	}
	for _, tt := range tests {
		if got := ParseInt(tt.in); got != tt.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTransformOrders(t *testing.T) {
	rows := tabular.Parse("date,order_id,order_amount,region,items_delivered,items_missing,delivery_hour,driver_id,customer_id\n" +
		"2023-01-01,O1,\"$1,000.00\",North,8,2,14:30,D1,C1\n" +
		"2023-01-02,O2,$5,South,n/a,-3,,D2\n")

	orders := TransformOrders(rows)
	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(orders))
	}

	want := Order{
		Date: "2023-01-01", OrderID: "O1", OrderAmount: "$1,000.00", Region: "North",
		ItemsDelivered: 8, ItemsMissing: 2, DeliveryHour: "14:30", DriverID: "D1", CustomerID: "C1",
	}
	if orders[0] != want {
		t.Errorf("Unexpected first order: %+v", orders[0])
	}

	if orders[1].ItemsDelivered != 0 || orders[1].ItemsMissing != 0 {
		t.Errorf("Expected defaults for unparsable and negative counts, got %+v", orders[1])
	}
	if orders[1].CustomerID != "" {
		t.Errorf("Expected empty customer id, got %q", orders[1].CustomerID)
	}
}

func TestTransformDrivers_CapitalisedTrips(t *testing.T) {
	rows := []tabular.Row{
		{"driver_id": "D1", "driver_name": "Ana", "age": "31", "Trips": "120", "trips": "999"},
	}
	drivers := TransformDrivers(rows)
	if drivers[0].Trips != 120 {
		t.Errorf("Expected trips from 'Trips' column, got %d", drivers[0].Trips)
	}
	if drivers[0].Age != 31 {
		t.Errorf("Expected age 31, got %d", drivers[0].Age)
	}
}

func TestTransformProducts_MisspelledID(t *testing.T) {
	rows := []tabular.Row{
		{"produc_id": "P1", "product_id": "WRONG", "product_name": "Milk", "category": "Dairy", "price": "$2.50"},
		{"product_id": "P2"},
	}
	products := TransformProducts(rows)
	if products[0].ProductID != "P1" {
		t.Errorf("Expected id from 'produc_id', got %q", products[0].ProductID)
	}
	if products[1].ProductID != "" {
		t.Errorf("Expected correctly spelled column to be ignored, got %q", products[1].ProductID)
	}
}

func TestTransformCustomersAndMissingItems(t *testing.T) {
	customers := TransformCustomers([]tabular.Row{{"customer_id": "C1", "customer_name": "Bo", "customer_age": "x"}})
	if customers[0] != (Customer{CustomerID: "C1", CustomerName: "Bo"}) {
		t.Errorf("Unexpected customer: %+v", customers[0])
	}

	items := TransformMissingItems([]tabular.Row{{"order_id": "O1", "product_id_1": "P1", "product_id_3": "P3"}})
	if items[0].ProductID2 != "" {
		t.Errorf("Expected empty middle slot, got %q", items[0].ProductID2)
	}
	if got := items[0].ProductIDs(); !reflect.DeepEqual(got, []string{"P1", "P3"}) {
		t.Errorf("ProductIDs() = %v", got)
	}
}

func TestMissingItem_DuplicateSlots(t *testing.T) {
	m := MissingItem{OrderID: "O1", ProductID1: "P1", ProductID2: "P1"}
	if got := m.ProductIDs(); !reflect.DeepEqual(got, []string{"P1", "P1"}) {
		t.Errorf("Expected duplicate slots to be kept, got %v", got)
	}
}
