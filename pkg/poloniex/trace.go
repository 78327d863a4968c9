package poloniex

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Tracer receives every API client call with its arguments and its result or
// error. Tracing is observe-only; it never alters what a call returns.
type Tracer interface {
	Trace(method string, args map[string]interface{}, result interface{}, err error)
}

// LogTracer writes call traces to a logrus logger, tagging each call with a
// unique id so the request and its outcome can be correlated in the stream.
type LogTracer struct {
	Logger logrus.FieldLogger
}

func NewLogTracer() *LogTracer {
	return &LogTracer{Logger: log}
}

func (t *LogTracer) Trace(method string, args map[string]interface{}, result interface{}, err error) {
	entry := t.Logger.WithFields(logrus.Fields{
		"call":   uuid.NewString(),
		"method": method,
	})
	for k, v := range args {
		entry = entry.WithField("arg."+k, v)
	}

	if err != nil {
		entry.WithError(err).Info("api call failed")
		return
	}
	entry.WithField("result", result).Info("api call")
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(method string, args map[string]interface{}, result interface{}, err error)

func (f TracerFunc) Trace(method string, args map[string]interface{}, result interface{}, err error) {
	f(method, args, result, err)
}
