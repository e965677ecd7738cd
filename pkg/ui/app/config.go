package app

import (
	"time"

	"github.com/ryanoneill/envision-sub004/pkg/logging"
	"github.com/ryanoneill/envision-sub004/pkg/telemetry"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

// ErrorPolicy decides what the async runtime does with errors from
// fallible commands and backend flushes.
type ErrorPolicy int

const (
	// ErrorPolicyAbort stops the runtime on the first error.
	ErrorPolicyAbort ErrorPolicy = iota
	// ErrorPolicyLog records the error and continues.
	ErrorPolicyLog
	// ErrorPolicyChannel leaves consumption to the caller via Errors().
	ErrorPolicyChannel
)

const (
	// DefaultMaxMessagesPerTick bounds the update loop per tick.
	DefaultMaxMessagesPerTick = 1024
	// DefaultMessageBuffer sizes the async message channel.
	DefaultMessageBuffer = 256
)

// RuntimeConfig carries the recognised runtime options. The zero value
// is usable: no tick, default loop guard, abort on error, default
// theme, no history, no logging or metrics.
type RuntimeConfig struct {
	// TickInterval drives periodic wakeups in the async runtime.
	// Zero disables ticking.
	TickInterval time.Duration

	// MaxMessagesPerTick bounds the message-processing loop per tick;
	// exceeding it trips the loop guard. Zero means the default.
	MaxMessagesPerTick int

	// ErrorPolicy governs async error handling.
	ErrorPolicy ErrorPolicy

	// Theme is handed to View calls. Nil means theme.DefaultTheme().
	Theme *theme.Theme

	// HistorySize caps the capture backend's frame ring when the
	// runtime constructs one. Zero keeps no history.
	HistorySize int

	// MessageBuffer sizes the async message channel. Zero means the
	// default.
	MessageBuffer int

	// Logger receives runtime diagnostics. Nil disables logging.
	Logger *logging.Logger

	// Metrics receives runtime counters. Nil disables metrics.
	Metrics *telemetry.Metrics
}

func (c RuntimeConfig) withDefaults() RuntimeConfig {
	if c.MaxMessagesPerTick <= 0 {
		c.MaxMessagesPerTick = DefaultMaxMessagesPerTick
	}
	if c.MessageBuffer <= 0 {
		c.MessageBuffer = DefaultMessageBuffer
	}
	if c.Theme == nil {
		c.Theme = theme.DefaultTheme()
	}
	return c
}
