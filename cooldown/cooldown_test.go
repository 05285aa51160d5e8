package cooldown_test

import (
	"testing"
	"time"

	"github.com/zephyrtronium/twitchpaster/cooldown"
)

func TestLimiterCycle(t *testing.T) {
	l := cooldown.New(time.Minute, 5*time.Second, 0)
	t0 := time.Unix(1700000000, 0)
	steps := []struct {
		name string
		at   time.Duration
		want cooldown.Verdict
	}{
		{"first", 0, cooldown.Verdict{Allow: true}},
		{"spam", time.Second, cooldown.Verdict{Warn: true}},
		{"spam-again", 3 * time.Second, cooldown.Verdict{}},
		{"window-edge", 6 * time.Second, cooldown.Verdict{}},
		{"window-over", 7 * time.Second, cooldown.Verdict{Warn: true}},
		{"expiry", time.Minute, cooldown.Verdict{Allow: true}},
	}
	for i, s := range steps {
		got := l.Check("#kessoku", "bocchi", t0.Add(s.at))
		if got != s.want {
			t.Errorf("%s: wrong verdict: want %+v, got %+v", s.name, s.want, got)
		}
		if i == 0 {
			l.Start("#kessoku", "bocchi", t0)
		}
	}
}

func TestLimiterKeys(t *testing.T) {
	l := cooldown.New(time.Minute, 5*time.Second, 0)
	t0 := time.Unix(1700000000, 0)
	l.Start("#kessoku", "bocchi", t0)
	if v := l.Check("#kessoku", "ryo", t0); !v.Allow {
		t.Errorf("other user is cooling down")
	}
	if v := l.Check("#sickhack", "bocchi", t0); !v.Allow {
		t.Errorf("user is cooling down in other channel")
	}
	if v := l.Check("#kessoku", "bocchi", t0); v.Allow {
		t.Errorf("user isn't cooling down")
	}
}

func TestLimiterRestart(t *testing.T) {
	l := cooldown.New(time.Minute, 5*time.Second, 0)
	t0 := time.Unix(1700000000, 0)
	l.Start("#kessoku", "bocchi", t0)
	if v := l.Check("#kessoku", "bocchi", t0.Add(time.Second)); !v.Warn {
		t.Errorf("no warning during cooldown")
	}
	// A new paste after the cooldown keeps the existing warning window.
	l.Start("#kessoku", "bocchi", t0.Add(time.Minute))
	if v := l.Check("#kessoku", "bocchi", t0.Add(time.Minute+time.Second)); v != (cooldown.Verdict{Warn: true}) {
		t.Errorf("wrong verdict after restart: %+v", v)
	}
}

func TestLimiterWarn(t *testing.T) {
	l := cooldown.New(time.Minute, 5*time.Second, 0)
	t0 := time.Unix(1700000000, 0)
	if !l.Warn("#kessoku", "bocchi", t0) {
		t.Errorf("no warning for unknown user")
	}
	if l.Warn("#kessoku", "bocchi", t0.Add(time.Second)) {
		t.Errorf("warned twice in one window")
	}
	if !l.Warn("#kessoku", "bocchi", t0.Add(6*time.Second)) {
		t.Errorf("no warning after window")
	}
	l.Start("#kessoku", "ryo", t0)
	if v := l.Check("#kessoku", "ryo", t0.Add(time.Second)); !v.Warn {
		t.Errorf("no warning during cooldown")
	}
	if l.Warn("#kessoku", "ryo", t0.Add(2*time.Second)) {
		t.Errorf("warned inside rate limit warning window")
	}
}

func TestLimiterSweep(t *testing.T) {
	l := cooldown.New(time.Minute, 5*time.Second, 0)
	t0 := time.Unix(1700000000, 0)
	l.Start("#kessoku", "bocchi", t0)
	l.Start("#kessoku", "ryo", t0.Add(30*time.Second))
	l.Warn("#kessoku", "kita", t0.Add(58*time.Second))
	if n := l.Sweep(t0.Add(30 * time.Second)); n != 0 {
		t.Errorf("swept %d active users", n)
	}
	if n := l.Sweep(t0.Add(time.Minute)); n != 1 {
		t.Errorf("wrong number swept at first expiry: want 1, got %d", n)
	}
	if got := l.Len(); got != 2 {
		t.Errorf("wrong number remaining: want 2, got %d", got)
	}
	if n := l.Sweep(t0.Add(2 * time.Minute)); n != 2 {
		t.Errorf("wrong number swept at end: want 2, got %d", n)
	}
	if got := l.Len(); got != 0 {
		t.Errorf("users remain after sweep: %d", got)
	}
}

func TestLimiterSize(t *testing.T) {
	l := cooldown.New(time.Minute, 5*time.Second, 2)
	t0 := time.Unix(1700000000, 0)
	l.Start("#kessoku", "bocchi", t0)
	l.Start("#kessoku", "ryo", t0)
	l.Start("#kessoku", "kita", t0)
	if got := l.Len(); got != 2 {
		t.Errorf("wrong size: want 2, got %d", got)
	}
	if v := l.Check("#kessoku", "bocchi", t0); !v.Allow {
		t.Errorf("least recent user wasn't evicted")
	}
}
