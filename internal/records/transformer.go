package records

import (
	"strconv"
	"strings"

	"delivery-risk/internal/tabular"
)

// Source header names that differ from the field they populate.
const (
	tripsKey     = "Trips"
	productIDKey = "produc_id"
)

// TransformOrders converts raw order rows. Unparsable counts become zero;
// negative counts are clamped to zero.
func TransformOrders(rows []tabular.Row) []Order {
	orders := make([]Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, Order{
			Date:           str(row, "date"),
			OrderID:        str(row, "order_id"),
			OrderAmount:    str(row, "order_amount"),
			Region:         str(row, "region"),
			ItemsDelivered: max(0, atoi(row, "items_delivered")),
			ItemsMissing:   max(0, atoi(row, "items_missing")),
			DeliveryHour:   str(row, "delivery_hour"),
			DriverID:       str(row, "driver_id"),
			CustomerID:     str(row, "customer_id"),
		})
	}
	return orders
}

// TransformDrivers converts raw driver rows. Trip counts are read from the
// capitalised "Trips" column used by the source export.
func TransformDrivers(rows []tabular.Row) []Driver {
	drivers := make([]Driver, 0, len(rows))
	for _, row := range rows {
		drivers = append(drivers, Driver{
			DriverID:   str(row, "driver_id"),
			DriverName: str(row, "driver_name"),
			Age:        atoi(row, "age"),
			Trips:      atoi(row, tripsKey),
		})
	}
	return drivers
}

// TransformProducts converts raw product rows. The identifier lives in the
// source's "produc_id" column.
func TransformProducts(rows []tabular.Row) []Product {
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, Product{
			ProductID:   str(row, productIDKey),
			ProductName: str(row, "product_name"),
			Category:    str(row, "category"),
			Price:       str(row, "price"),
		})
	}
	return products
}

func TransformCustomers(rows []tabular.Row) []Customer {
	customers := make([]Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, Customer{
			CustomerID:   str(row, "customer_id"),
			CustomerName: str(row, "customer_name"),
			CustomerAge:  atoi(row, "customer_age"),
		})
	}
	return customers
}

func TransformMissingItems(rows []tabular.Row) []MissingItem {
	items := make([]MissingItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, MissingItem{
			OrderID:    str(row, "order_id"),
			ProductID1: str(row, "product_id_1"),
			ProductID2: str(row, "product_id_2"),
			ProductID3: str(row, "product_id_3"),
		})
	}
	return items
}

func str(row tabular.Row, key string) string {
	return row[key]
}

func atoi(row tabular.Row, key string) int {
	return ParseInt(row[key])
}

// ParseInt reads the leading base-10 integer of s, ignoring leading
// whitespace and anything after the digits. It returns 0 when s has no
// leading digits or the value overflows.
func ParseInt(s string) int {
	s = strings.TrimLeft(s, " \t\r\n\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
