// internal/services/export_service.go
package services

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// ExportService renders printable order documents for staff.
type ExportService struct {
	orders *OrderService
}

func NewExportService(orders *OrderService) *ExportService {
	return &ExportService{orders: orders}
}

// OrderPDF renders the order as an A4 document: header with the order
// number and status, customer block, line items with frozen prices, and
// the stored total.
func (s *ExportService) OrderPDF(orderID uuid.UUID) ([]byte, error) {
	order, err := s.orders.load(orderID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Order %s", order.OrderNumber), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("Order %s", order.OrderNumber))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Delivery")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	if order.User != nil {
		pdf.Cell(0, 6, order.User.FullName())
		pdf.Ln(6)
	}
	pdf.MultiCell(0, 6, order.ShippingAddress, "", "L", false)
	pdf.Cell(0, 6, order.PhoneNumber)
	pdf.Ln(6)
	if order.CustomerNotes != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Notes: %s", order.CustomerNotes))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Subtotal", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i := range order.Items {
		item := order.Items[i]
		name := item.ProductID.String()
		if item.Product != nil {
			name = item.Product.Name
		}
		pdf.CellFormat(90, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, item.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, item.TotalPrice().StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 9, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 9, order.TotalAmount.StringFixed(2), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render order pdf: %w", err)
	}
	return buf.Bytes(), nil
}
