package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/zephyrtronium/twitchpaster/metrics"
)

func TestNewRegisters(t *testing.T) {
	m := metrics.New("test")
	reg := prometheus.NewRegistry()
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			t.Fatalf("couldn't register %v: %v", c, err)
		}
	}
	m.TMIMsgsCount.Observe(1)
	m.TMICommandCount.Observe(1, "join")
	m.PasteCount.Observe(1, "ok")
	m.PasteCount.Observe(1, "post_limit")
	m.PasteLatency.Observe(0.3)
	m.CooldownEntries.Observe(4)
	m.CooldownEntries.Observe(2)
	const want = `
# HELP test_cooldown_entries Number of users tracked by the cooldown limiter.
# TYPE test_cooldown_entries gauge
test_cooldown_entries 2
# HELP test_pastes_total Number of paste submissions by result.
# TYPE test_pastes_total counter
test_pastes_total{result="ok"} 1
test_pastes_total{result="post_limit"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "test_cooldown_entries", "test_pastes_total"); err != nil {
		t.Error(err)
	}
	if got := testutil.CollectAndCount(m.TMICommandCount); got != 1 {
		t.Errorf("wrong number of command series: want 1, got %d", got)
	}
}
