package engine

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"delivery-risk/internal/records"

	"github.com/xuri/excelize/v2"
)

// Table is one source file ready to be written.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Tables lays the dataset out under the default source file names.
func Tables(ds records.Dataset) []Table {
	orders := Table{Name: "orders", Header: records.OrderColumns}
	for _, o := range ds.Orders {
		orders.Rows = append(orders.Rows, []string{
			o.Date, o.OrderID, o.OrderAmount, o.Region,
			strconv.Itoa(o.ItemsDelivered), strconv.Itoa(o.ItemsMissing),
			o.DeliveryHour, o.DriverID, o.CustomerID,
		})
	}

	drivers := Table{Name: "drivers_data", Header: records.DriverColumns}
	for _, d := range ds.Drivers {
		drivers.Rows = append(drivers.Rows, []string{d.DriverID, d.DriverName, strconv.Itoa(d.Age), strconv.Itoa(d.Trips)})
	}

	products := Table{Name: "products_data", Header: records.ProductColumns}
	for _, p := range ds.Products {
		products.Rows = append(products.Rows, []string{p.ProductID, p.ProductName, p.Category, p.Price})
	}

	customers := Table{Name: "customers_data", Header: records.CustomerColumns}
	for _, c := range ds.Customers {
		customers.Rows = append(customers.Rows, []string{c.CustomerID, c.CustomerName, strconv.Itoa(c.CustomerAge)})
	}

	missing := Table{Name: "missing_items_data", Header: records.MissingItemColumns}
	for _, m := range ds.MissingItems {
		missing.Rows = append(missing.Rows, []string{m.OrderID, m.ProductID1, m.ProductID2, m.ProductID3})
	}

	return []Table{orders, drivers, products, customers, missing}
}

// Save writes every table to outDir as "csv" or "xlsx" files.
func Save(outDir string, ds records.Dataset, format string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for _, t := range Tables(ds) {
		var path string
		var err error
		switch format {
		case "csv", "":
			path = filepath.Join(outDir, t.Name+".csv")
			err = writeCSV(path, t)
		case "xlsx":
			path = filepath.Join(outDir, t.Name+".xlsx")
			err = writeWorkbook(path, t)
		default:
			return nil, fmt.Errorf("unsupported format %q (use csv or xlsx)", format)
		}
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", t.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSV(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return err
	}
	return f.Close()
}

func writeWorkbook(path string, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range append([][]string{t.Header}, t.Rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
