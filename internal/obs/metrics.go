package obs

import (
	"strings"
)

// Label is a key/value pair attached to measurements.
type Label struct {
	Key   string
	Value string
}

// Meter is a very small interface for emitting counters/histograms.
// Implementations may no-op or bridge to a metrics system.
type Meter interface {
	Counter(name string, value float64, labels ...Label)
	Histogram(name string, value float64, labels ...Label)
}

// NopMeter is a Meter that discards all measurements.
type NopMeter struct{}

func (NopMeter) Counter(name string, value float64, labels ...Label)   {}
func (NopMeter) Histogram(name string, value float64, labels ...Label) {}

// LogMeter writes every measurement to a Logger at Debug level.
type LogMeter struct {
	L Logger
}

func (m LogMeter) Counter(name string, value float64, labels ...Label) {
	OrNop(m.L).Logf(Debug, "counter %s%s += %g", name, formatLabels(labels), value)
}

func (m LogMeter) Histogram(name string, value float64, labels ...Label) {
	OrNop(m.L).Logf(Debug, "histogram %s%s observe %g", name, formatLabels(labels), value)
}

// OrNopMeter returns m, or NopMeter when m is nil.
func OrNopMeter(m Meter) Meter {
	if m == nil {
		return NopMeter{}
	}
	return m
}

func formatLabels(labels []Label) string {
	if len(labels) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, l := range labels {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(l.Key)
		sb.WriteString("=\"")
		sb.WriteString(l.Value)
		sb.WriteByte('"')
	}
	sb.WriteByte('}')
	return sb.String()
}
