package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitPrometheusRecorder(t *testing.T) {

	Convey("Counters are labelled by kind and outcome", t, func() {
		reg := prometheus.NewRegistry()
		r, err := NewPrometheusRecorder(reg)
		So(err, ShouldBeNil)

		r.IncCounter("task", map[string]string{LabelKind: "session", LabelOutcome: "success"})
		r.IncCounter("task", map[string]string{LabelKind: "session", LabelOutcome: "success"})
		r.IncCounter("task", map[string]string{LabelKind: "operation", LabelOutcome: "failure"})

		So(testutil.ToFloat64(r.counters.WithLabelValues("task", "session", "success")), ShouldEqual, 2)
		So(testutil.ToFloat64(r.counters.WithLabelValues("task", "operation", "failure")), ShouldEqual, 1)
	})

	Convey("Latencies are observed per kind", t, func() {
		reg := prometheus.NewRegistry()
		r, err := NewPrometheusRecorder(reg)
		So(err, ShouldBeNil)

		r.ObserveLatency("task", 20*time.Millisecond, map[string]string{LabelKind: "validator"})
		So(testutil.CollectAndCount(r.histogram), ShouldEqual, 1)
	})

	Convey("Registering twice fails", t, func() {
		reg := prometheus.NewRegistry()
		_, err := NewPrometheusRecorder(reg)
		So(err, ShouldBeNil)
		_, err = NewPrometheusRecorder(reg)
		So(err, ShouldNotBeNil)
	})

	Convey("The no-op recorder accepts anything", t, func() {
		var r Recorder = NoopRecorder{}
		So(func() { r.IncCounter("task", nil) }, ShouldNotPanic)
	})
}
