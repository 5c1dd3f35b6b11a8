package typesource

import "fmt"

// Diag carries non-fatal warnings produced during adaptation: dropped
// members, unrecognized shapes, enum irregularities. Adaptation warns and
// continues; only a nil handle is a hard error.
type Diag struct {
	ws []string
}

// HasWarnings reports whether any warnings were collected.
func (d *Diag) HasWarnings() bool { return len(d.ws) > 0 }

// Warnings returns a copy of the collected warnings.
func (d *Diag) Warnings() []string { return append([]string(nil), d.ws...) }

func (d *Diag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
