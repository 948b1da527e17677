package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"

	"tcis/internal/api/models"
	dErrors "tcis/pkg/domain-errors"
)

// Multipart field names of POST /api/add_payment/.
const (
	FieldTicketID     = "ticket_id"
	FieldUserID       = "user_id"
	FieldAmount       = "amount"
	FieldReceiptImage = "receipt_image"
)

// AddPayment uploads a payment with its receipt photo. Only 201 is success.
// The receipt bytes are copied as-is; the client does not look inside the image.
func (c *HTTPClient) AddPayment(ctx context.Context, req models.PaymentRequest) error {
	receipt, err := openReceipt(req.ReceiptURI)
	if err != nil {
		return err
	}
	defer receipt.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{FieldTicketID, req.TicketID},
		{FieldUserID, req.UserID.String()},
		{FieldAmount, req.Amount.String()},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return &Error{Operation: OpAddPayment, Kind: KindContract, Message: "failed to encode form", Err: err}
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FieldReceiptImage, ReceiptFilename(req.TicketID)))
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	if err != nil {
		return &Error{Operation: OpAddPayment, Kind: KindContract, Message: "failed to encode form", Err: err}
	}
	if _, err := io.Copy(part, receipt); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "failed to read receipt image")
	}
	if err := w.Close(); err != nil {
		return &Error{Operation: OpAddPayment, Kind: KindContract, Message: "failed to encode form", Err: err}
	}

	return c.do(ctx, call{
		operation:   OpAddPayment,
		method:      http.MethodPost,
		path:        PathAddPayment,
		body:        &buf,
		contentType: w.FormDataContentType(),
		success:     statusCreated,
	})
}

// ReceiptFilename is the upload name the backend receives for a ticket's receipt.
func ReceiptFilename(ticketID string) string {
	return "receipt_" + strings.TrimSpace(ticketID) + ".jpg"
}

// openReceipt accepts the picker's file:// URI or a plain path.
func openReceipt(uri string) (*os.File, error) {
	p := strings.TrimSpace(uri)
	if p == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "receipt image is required")
	}
	if strings.HasPrefix(p, "file://") {
		u, err := url.Parse(p)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid receipt URI")
		}
		p = u.Path
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "failed to open receipt image")
	}
	return f, nil
}
