package printing

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcis/internal/api/models"
)

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func ticket() models.Ticket {
	return models.Ticket{
		ID:               12,
		LicenseNo:        "N01-23-456789",
		PlateNumber:      "ABC 1234",
		ViolationDetails: models.ViolationRef{ID: 1, Name: "Speeding"},
		FineAmount:       "1000.00",
		Status:           models.TicketStatusPending,
		CreatedAt:        time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderTicket(t *testing.T) {
	tests := []struct {
		name      string
		signature string
	}{
		{name: "png signature", signature: pngDataURI(t)},
		{name: "no signature"},
		{name: "unsupported signature", signature: "data:image/svg+xml;base64,PHN2Zz4="},
		{name: "corrupt png", signature: "data:image/png;base64,AAAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := ticket()
			tk.DriverSignature = tt.signature
			doc, err := RenderTicket(tk, Details{Officer: "Jane Doe", PrintedAt: time.Now()})
			require.NoError(t, err)
			assert.Equal(t, "ticket_12.pdf", doc.Name)
			assert.Equal(t, "12", doc.TicketID)
			assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
		})
	}
}

func TestDecodeDataURI(t *testing.T) {
	_, kind, ok := decodeDataURI("data:image/jpeg;base64,/9j/")
	assert.True(t, ok)
	assert.Equal(t, "JPG", kind)

	_, _, ok = decodeDataURI("file:///tmp/sig.png")
	assert.False(t, ok)
	_, _, ok = decodeDataURI("data:image/png,raw")
	assert.False(t, ok)
}

func TestSpoolPrinter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool")
	fixed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	p := NewSpoolPrinter(dir, WithSpoolClock(func() time.Time { return fixed }))

	path, err := p.Print(context.Background(), Document{Name: "ticket_12.pdf", TicketID: "12", Data: []byte("%PDF-1.3")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20240315T100000.000_ticket_12.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Print(ctx, Document{Name: "x.pdf"})
	assert.ErrorIs(t, err, context.Canceled)
}
