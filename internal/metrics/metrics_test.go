package metrics_test

import (
	"testing"

	"github.com/fpcorso/light-cache/internal/metrics"
)

func TestNoop_AllMethods(t *testing.T) {
	n := metrics.Noop{}
	n.RecordHit("general_cache")
	n.RecordMiss("general_cache")
	n.RecordExpired("general_cache")
	n.RecordError("general_cache", "save")
}
