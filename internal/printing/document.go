// Package printing renders issued tickets as printable documents and hands them to a
// printer. The hardware side stays behind Printer; the default implementation spools
// documents to a directory.
package printing

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for signature images
	_ "image/png"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"tcis/internal/api/models"
)

// Receipt paper size in millimetres.
const (
	paperWidthMM  = 80
	paperHeightMM = 200
	marginMM      = 5
)

// Document is a rendered ticket ready for a printer.
type Document struct {
	Name     string
	TicketID string
	Data     []byte
}

// Details is the header information printed above the ticket body.
type Details struct {
	Officer   string
	PrintedAt time.Time
}

// RenderTicket lays out t on receipt-width paper. A driver signature that is not a
// decodable PNG or JPEG data URI is replaced by a placeholder line.
func RenderTicket(t models.Ticket, d Details) (Document, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: paperWidthMM, Ht: paperHeightMM},
	})
	pdf.SetTitle(fmt.Sprintf("Traffic Citation #%s", t.ID), false)
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "TRAFFIC CITATION", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Ticket #"+t.ID.String(), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	rows := [][2]string{
		{"License No", safe(t.LicenseNo)},
		{"Plate No", safe(t.PlateNumber)},
		{"Violation", t.ViolationName()},
		{"Fine Amount", safe(t.FineAmount.String())},
		{"Due Date", safe(t.DueDate.String())},
		{"Status", safe(t.Status)},
		{"Location", safe(t.Location)},
	}
	if !t.CreatedAt.IsZero() {
		rows = append(rows, [2]string{"Issued", t.CreatedAt.Format("2006-01-02 15:04")})
	}
	if d.Officer != "" {
		rows = append(rows, [2]string{"Officer", d.Officer})
	}
	for _, r := range rows {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(25, 5, r[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, r[1], "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 5, "Driver Signature:", "", 1, "L", false, 0, "")
	if !drawSignature(pdf, t.DriverSignature) {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, "[signature on file]", "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4, "Pay the fine on or before the due date or file a dispute through the app.", "", "C", false)
	if !d.PrintedAt.IsZero() {
		pdf.CellFormat(0, 4, "Printed "+d.PrintedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Document{}, fmt.Errorf("render ticket %s: %w", t.ID, err)
	}
	return Document{
		Name:     fmt.Sprintf("ticket_%s.pdf", t.ID),
		TicketID: t.ID.String(),
		Data:     buf.Bytes(),
	}, nil
}

// drawSignature embeds a data-URI signature image. It reports false when nothing was drawn.
func drawSignature(pdf *gofpdf.Fpdf, dataURI string) bool {
	data, imageType, ok := decodeDataURI(dataURI)
	if !ok {
		return false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 {
		return false
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(data))
	if pdf.Err() {
		pdf.ClearError()
		return false
	}
	const width = 40.0
	height := width * float64(cfg.Height) / float64(cfg.Width)
	pdf.ImageOptions("signature", pdf.GetX(), pdf.GetY(), width, height, true, opts, 0, "")
	return true
}

// decodeDataURI accepts data:image/png;base64,... and data:image/jpeg;base64,...
func decodeDataURI(uri string) ([]byte, string, bool) {
	header, payload, found := strings.Cut(uri, ",")
	if !found || !strings.HasSuffix(header, ";base64") {
		return nil, "", false
	}
	var imageType string
	switch strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64") {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg", "image/jpg":
		imageType = "JPG"
	default:
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, "", false
	}
	return data, imageType, true
}

func safe(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
