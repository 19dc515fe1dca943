package logic

import (
	"io"
	"log"
)

// DebugLoggable is the shared debug capability behaviors compose with.
type DebugLoggable interface {
	DebugEnabled() bool
	PrintDebug(msg string)
}

// Debug routes trace messages for a named owner to a logger.
type Debug struct {
	Enabled bool
	Owner   string
	Logger  *log.Logger
}

// NewDebug builds a Debug that writes to logger, or discards when logger is nil.
func NewDebug(owner string, enabled bool, logger *log.Logger) *Debug {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Debug{Enabled: enabled, Owner: owner, Logger: logger}
}

func (d *Debug) DebugEnabled() bool {
	return d != nil && d.Enabled
}

func (d *Debug) PrintDebug(msg string) {
	if d == nil || d.Logger == nil {
		return
	}
	if d.Owner == "" {
		d.Logger.Println(msg)
		return
	}
	d.Logger.Printf("%s: %s", d.Owner, msg)
}

// NoDebug never traces.
type NoDebug struct{}

func (NoDebug) DebugEnabled() bool { return false }

func (NoDebug) PrintDebug(string) {}
