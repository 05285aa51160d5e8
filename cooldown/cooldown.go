// Package cooldown implements per-user paste cooldowns with spam warnings.
package cooldown

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultCooldown is the time a user must wait between pastes.
	DefaultCooldown = time.Minute
	// DefaultWarning is the time between warnings to a user who keeps
	// pasting during their cooldown.
	DefaultWarning = 5 * time.Second
	// DefaultSize is the maximum number of users tracked at once.
	DefaultSize = 1 << 16
)

type key struct {
	channel, user string
}

type entry struct {
	// expires is the end of the cooldown.
	expires time.Time
	// warned is the end of the most recent warning window.
	warned time.Time
}

// Limiter tracks cooldowns for users in channels. It is not safe for
// concurrent use; the owner must serialize all calls.
type Limiter struct {
	cooldown time.Duration
	warning  time.Duration
	entries  *lru.Cache[key, *entry]
}

// Verdict is the result of checking a user's cooldown.
type Verdict struct {
	// Allow indicates that the user is not cooling down.
	Allow bool
	// Warn indicates that the user is cooling down and hasn't been warned
	// recently. The warning window opens when Warn is true.
	Warn bool
}

// New creates a limiter. Non-positive arguments use the defaults.
// When more than size users are cooling down, the least recently seen are
// forgotten.
func New(cooldown, warning time.Duration, size int) *Limiter {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if warning <= 0 {
		warning = DefaultWarning
	}
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[key, *entry](size)
	if err != nil {
		panic(err)
	}
	return &Limiter{cooldown: cooldown, warning: warning, entries: c}
}

// Check determines whether a user may paste at the given time.
// A cooldown that expires exactly at now has elapsed.
func (l *Limiter) Check(channel, user string, now time.Time) Verdict {
	e, ok := l.entries.Get(key{channel, user})
	if !ok || !e.expires.After(now) {
		return Verdict{Allow: true}
	}
	if e.warned.Before(now) {
		e.warned = now.Add(l.warning)
		return Verdict{Warn: true}
	}
	return Verdict{}
}

// Start begins a cooldown for a user.
func (l *Limiter) Start(channel, user string, now time.Time) {
	k := key{channel, user}
	if e, ok := l.entries.Get(k); ok {
		e.expires = now.Add(l.cooldown)
		return
	}
	l.entries.Add(k, &entry{expires: now.Add(l.cooldown)})
}

// Warn opens a warning window for a user if they are not already in one.
// It reports whether the window was opened, i.e. whether the caller should
// send the user a message.
func (l *Limiter) Warn(channel, user string, now time.Time) bool {
	k := key{channel, user}
	e, ok := l.entries.Get(k)
	if !ok {
		l.entries.Add(k, &entry{warned: now.Add(l.warning)})
		return true
	}
	if !e.warned.Before(now) {
		return false
	}
	e.warned = now.Add(l.warning)
	return true
}

// Sweep forgets users whose cooldown and warning window have both ended.
// It returns the number of users removed.
func (l *Limiter) Sweep(now time.Time) int {
	n := 0
	for _, k := range l.entries.Keys() {
		e, ok := l.entries.Peek(k)
		if !ok || e.expires.After(now) || e.warned.After(now) {
			continue
		}
		l.entries.Remove(k)
		n++
	}
	return n
}

// Len returns the number of users being tracked.
func (l *Limiter) Len() int {
	return l.entries.Len()
}
