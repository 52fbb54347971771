package admin

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/tealeg/xlsx"

	"github.com/wichananm65/styliqo-backend/internal/order"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ExportFilename  = "orders.xlsx"
)

var exportHeaders = []string{
	"Order ID", "Reference", "Customer", "Email", "Phone", "City", "Items",
	"Quantity", "Total", "Payment", "Status", "Created At", "Updated At",
}

// WriteOrdersXLSX writes orders as a single-sheet workbook, one row per order.
func WriteOrdersXLSX(w io.Writer, orders []order.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return errors.Wrap(err, "add sheet")
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, o := range orders {
		titles := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			titles = append(titles, it.Title)
		}
		updated := ""
		if o.UpdatedAt != nil {
			updated = o.UpdatedAt.Format("2006-01-02 15:04:05")
		}

		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.Reference)
		row.AddCell().SetValue(o.ShippingAddress.Name)
		row.AddCell().SetValue(o.UserEmail)
		row.AddCell().SetValue(o.ShippingAddress.Phone)
		row.AddCell().SetValue(o.ShippingAddress.City)
		row.AddCell().SetValue(strings.Join(titles, "; "))
		row.AddCell().SetValue(o.ItemCount())
		row.AddCell().SetValue(o.TotalAmount)
		row.AddCell().SetValue(o.PaymentMethod)
		row.AddCell().SetValue(order.Label(o.Status))
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(updated)
	}

	return errors.Wrap(file.Write(w), "write workbook")
}
