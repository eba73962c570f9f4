package records

// Column layouts of the five source files, in export order.
var (
	OrderColumns       = []string{"date", "order_id", "order_amount", "region", "items_delivered", "items_missing", "delivery_hour", "driver_id", "customer_id"}
	DriverColumns      = []string{"driver_id", "driver_name", "age", tripsKey}
	ProductColumns     = []string{productIDKey, "product_name", "category", "price"}
	CustomerColumns    = []string{"customer_id", "customer_name", "customer_age"}
	MissingItemColumns = []string{"order_id", "product_id_1", "product_id_2", "product_id_3"}
)
