// Package metrics records checkout task latencies and outcomes.
package metrics

import "time"

// Label names understood by every Recorder
const (
	LabelKind    = "kind"
	LabelOutcome = "outcome"
)

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
