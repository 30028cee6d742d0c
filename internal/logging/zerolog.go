package logging

import "github.com/rs/zerolog"

// Zerolog adapts a zerolog.Logger to the Sink interface, the same way
// the teacher wires log.Logger into cmd/server/main.go.
type Zerolog struct {
	Logger zerolog.Logger
}

// NewZerolog builds a Sink from a configured zerolog.Logger.
func NewZerolog(l zerolog.Logger) Zerolog {
	return Zerolog{Logger: l}
}

func (z Zerolog) Debug(msg string, fields Fields) { z.event(z.Logger.Debug(), fields).Msg(msg) }
func (z Zerolog) Info(msg string, fields Fields)  { z.event(z.Logger.Info(), fields).Msg(msg) }
func (z Zerolog) Warn(msg string, fields Fields)  { z.event(z.Logger.Warn(), fields).Msg(msg) }
func (z Zerolog) Error(msg string, fields Fields) { z.event(z.Logger.Error(), fields).Msg(msg) }

func (z Zerolog) event(e *zerolog.Event, fields Fields) *zerolog.Event {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	return e
}
