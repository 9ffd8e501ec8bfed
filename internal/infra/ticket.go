package infra

// ticket.go — Printable drop-off ticket for a received device.
// A7-size PDF with the tracking code, a QR pointing to the public
// tracking page and the warranty pickup deadline.

import (
	"bytes"
	"fmt"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerarQRSeguimiento renders the tracking URL as a 256px PNG.
func GenerarQRSeguimiento(urlSeguimiento string) ([]byte, error) {
	png, err := qrcode.Encode(urlSeguimiento, qrcode.Low, 256)
	if err != nil {
		return nil, fmt.Errorf("ticket: encode QR: %w", err)
	}
	return png, nil
}

// GenerarTicketPDF builds the drop-off receipt in memory.
func GenerarTicketPDF(d *model.Dispositivo, urlSeguimiento string) ([]byte, error) {
	qrPNG, err := GenerarQRSeguimiento(urlSeguimiento)
	if err != nil {
		return nil, err
	}

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 6, "Servicio Técnico", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, "Comprobante de Ingreso", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, d.CodigoSeguimiento, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, d.FechaRecepcion.Format("02/01/2006  15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(1)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Cliente: %s", d.ClienteNombre), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Equipo: %s %s", d.Marca, d.Modelo), "", 1, "L", false, 0, "")

	pdf.MultiCell(contentW, 4, fmt.Sprintf("Problema: %s", acortar(d.Problema, 60)), "", "L", false)
	pdf.Ln(1)

	// QR centered
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr-seguimiento", opts, bytes.NewReader(qrPNG))
	qrSize := 30.0
	pdf.ImageOptions("qr-seguimiento", (pageW-qrSize)/2, pdf.GetY(), qrSize, qrSize, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + qrSize + 1)

	pdf.SetFont("Helvetica", "", 6)
	pdf.CellFormat(contentW, 3, urlSeguimiento, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	finGarantia := d.FechaRecepcion.AddDate(0, 0, model.DiasGarantia)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.MultiCell(contentW, 4, fmt.Sprintf(
		"Una vez terminada la reparación, dispone de %d días para retirar el equipo y conservar la garantía (ref. %s).",
		model.DiasGarantia, finGarantia.Format("02/01/2006")), "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("ticket: render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// acortar truncates free text to max runes. Cutting on bytes would split
// accented characters, the description is customer-typed Spanish.
func acortar(s string, max int) string {
	runas := []rune(s)
	if len(runas) <= max {
		return s
	}
	return string(runas[:max-1]) + "…"
}
