package console

import (
	"fmt"
	"io"
	"sync"
)

// Presenter prints blocking alerts to a terminal. Alerts from concurrent fetches are
// serialized so their lines never interleave.
type Presenter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) Alert(title, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "[%s] %s\n", title, message)
}

// Printf writes through the same lock as Alert.
func (p *Presenter) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}
