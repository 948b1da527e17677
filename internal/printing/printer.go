package printing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Printer sends a rendered document to an output device.
type Printer interface {
	Print(ctx context.Context, doc Document) (string, error)
}

// SpoolPrinter writes documents into a directory that a print daemon (or a person)
// picks up. It returns the written file path.
type SpoolPrinter struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// SpoolOption configures a SpoolPrinter.
type SpoolOption func(*SpoolPrinter)

// WithSpoolLogger sets the logger.
func WithSpoolLogger(logger *slog.Logger) SpoolOption {
	return func(p *SpoolPrinter) {
		p.logger = logger
	}
}

// WithSpoolClock overrides the clock used in file names.
func WithSpoolClock(now func() time.Time) SpoolOption {
	return func(p *SpoolPrinter) {
		p.now = now
	}
}

// NewSpoolPrinter creates a printer spooling into dir. The directory is created on first use.
func NewSpoolPrinter(dir string, opts ...SpoolOption) *SpoolPrinter {
	p := &SpoolPrinter{
		dir:    dir,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ Printer = (*SpoolPrinter)(nil)

// Print writes doc as <timestamp>_<name>.
func (p *SpoolPrinter) Print(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.dir, 0o750); err != nil {
		return "", fmt.Errorf("create spool dir: %w", err)
	}
	name := p.now().UTC().Format("20060102T150405.000") + "_" + filepath.Base(doc.Name)
	path := filepath.Join(p.dir, name)
	if err := os.WriteFile(path, doc.Data, 0o600); err != nil {
		return "", fmt.Errorf("spool %s: %w", doc.Name, err)
	}
	p.logger.InfoContext(ctx, "ticket spooled",
		"ticket_id", doc.TicketID,
		"path", path,
		"bytes", len(doc.Data),
	)
	return path, nil
}
