// Package pdf renders printable sale tickets for confirmed ventas.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hostalpos/internal/dto"

	"github.com/go-pdf/fpdf"
)

// TicketRenderer builds 80mm thermal-style tickets. Negocio is printed in the
// header; StoragePath, when set, gets a copy of every rendered ticket.
type TicketRenderer struct {
	Negocio     string
	StoragePath string
}

func NewTicketRenderer(negocio, storagePath string) *TicketRenderer {
	return &TicketRenderer{Negocio: negocio, StoragePath: storagePath}
}

// Render produces the PDF bytes for a confirmed sale.
func (r *TicketRenderer) Render(v *dto.VentaResponse) ([]byte, error) {
	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: 80, Ht: 200},
	})
	doc.SetMargins(5, 5, 5)
	doc.SetAutoPageBreak(true, 5)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(70, 6, r.Negocio, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 8)
	doc.CellFormat(70, 4, "Ticket "+shortID(v.ID), "", 1, "C", false, 0, "")
	fecha := v.CreatedAt
	if v.FechaConfirmacion != nil {
		fecha = *v.FechaConfirmacion
	}
	doc.CellFormat(70, 4, fecha, "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "B", 8)
	doc.CellFormat(34, 4, "Producto", "B", 0, "L", false, 0, "")
	doc.CellFormat(8, 4, "Cant", "B", 0, "R", false, 0, "")
	doc.CellFormat(14, 4, "P.Unit", "B", 0, "R", false, 0, "")
	doc.CellFormat(14, 4, "Subtotal", "B", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 8)
	for _, item := range v.Items {
		doc.CellFormat(34, 4, truncate(item.Producto, 22), "", 0, "L", false, 0, "")
		doc.CellFormat(8, 4, fmt.Sprintf("%d", item.Cantidad), "", 0, "R", false, 0, "")
		doc.CellFormat(14, 4, item.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		doc.CellFormat(14, 4, item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	doc.Ln(1)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(42, 5, "TOTAL", "T", 0, "L", false, 0, "")
	doc.CellFormat(28, 5, v.TotalVenta.StringFixed(2), "T", 1, "R", false, 0, "")

	if v.MedioPago != nil {
		doc.SetFont("Helvetica", "", 8)
		doc.CellFormat(70, 4, "Medio de pago: "+*v.MedioPago, "", 1, "L", false, 0, "")
	}

	doc.Ln(3)
	doc.SetFont("Helvetica", "I", 8)
	doc.CellFormat(70, 4, "Gracias por su compra", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("generando ticket: %w", err)
	}

	if r.StoragePath != "" {
		r.archive(v.ID, buf.Bytes())
	}
	return buf.Bytes(), nil
}

// archive keeps a copy on disk; failures are non-fatal since the bytes were
// already handed to the caller.
func (r *TicketRenderer) archive(ventaID string, data []byte) {
	if err := os.MkdirAll(r.StoragePath, 0o755); err != nil {
		return
	}
	name := fmt.Sprintf("ticket-%s-%s.pdf", shortID(ventaID), time.Now().Format("20060102"))
	_ = os.WriteFile(filepath.Join(r.StoragePath, name), data, 0o644)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate cuts by runes so a multi-byte character is never split, and
// appends an ASCII ellipsis the cp1252 core fonts can render.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
