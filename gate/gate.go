// Package gate filters raw collision notifications into user-visible
// contact events. A Gate is a per-collider policy object: the physics
// layer hands it every contact reported for its owning entity and the
// gate decides which ones are worth forwarding, debouncing repeated
// notifications from the same ongoing contact.
//
// Gates are engine-agnostic. The host supplies tags, counterpart
// identities, relative velocities, and a monotonic clock; the gate only
// does the bookkeeping. A single gate is owned and mutated by one
// thread, matching the host's single-threaded collision callbacks.
package gate

import (
	"math"
	"time"
)

// TimingMode selects how repeated notifications from the same ongoing
// contact are debounced.
type TimingMode int

const (
	// TimingNone forwards every notification that passes the tag and
	// strength filters.
	TimingNone TimingMode = iota
	// TimingCooldown forwards at most one notification per cooldown
	// window, across all counterparts.
	TimingCooldown
	// TimingInitialContact forwards only the first notification per
	// counterpart until that counterpart is explicitly cleared.
	TimingInitialContact
)

func (m TimingMode) String() string {
	switch m {
	case TimingNone:
		return "none"
	case TimingCooldown:
		return "cooldown"
	case TimingInitialContact:
		return "initial_contact"
	}
	return "unknown"
}

// Identity is an opaque comparable handle for a collision counterpart.
// It must be usable as a map key and stay stable for the duration of a
// contact. A nil identity under TimingInitialContact suppresses the
// notification rather than faulting.
type Identity = any

// Vec3 is a minimal three-component vector so the gate does not depend
// on any particular physics library.
type Vec3 struct {
	X, Y, Z float64
}

// Length returns the vector magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Notification is one raw contact report delivered by the physics host.
type Notification struct {
	// Tag is the counterpart's category tag.
	Tag string
	// Counterpart identifies the other participant. Required under
	// TimingInitialContact, ignored otherwise.
	Counterpart Identity
	// RelativeVelocity is the relative velocity of the two bodies at
	// the moment of contact. Its magnitude is the contact strength.
	RelativeVelocity Vec3
	// ContactPoint is where the contact happened. Diagnostic only.
	ContactPoint Vec3
}

// Decision is the outcome of evaluating one notification.
type Decision struct {
	// Forwarded is true when the notification passed every filter.
	Forwarded bool
	// Strength is the magnitude of the relative velocity. Zero when the
	// notification was rejected before the strength was computed.
	Strength float64
}

// Config holds the designer-facing knobs of a Gate.
type Config struct {
	// WatchedTag is the counterpart tag this gate reacts to.
	WatchedTag string
	// InvertMatch flips the tag filter: react to everything except
	// WatchedTag.
	InvertMatch bool
	// MinimumStrength drops contacts softer than this.
	MinimumStrength float64
	// Timing selects the debounce policy.
	Timing TimingMode
	// CooldownSeconds is the refractory window for TimingCooldown.
	CooldownSeconds float64
}

// Listener is invoked for every forwarded notification dispatched via
// Notify. Listeners are independent: all of them run, in subscription
// order, and none can cancel delivery to the others.
type Listener func(n Notification, strength float64)

// Gate decides, per raw collision notification, whether to forward it.
// The zero value is not usable; call New.
type Gate struct {
	cfg Config
	now func() float64

	lastAccepted float64
	contacted    map[Identity]struct{}
	listeners    []Listener
}

// New creates a Gate with the given config. Time defaults to a
// process-monotonic clock; tests and hosts with their own frame clock
// can override it with SetClock.
func New(cfg Config) *Gate {
	start := time.Now()
	g := &Gate{
		now: func() float64 { return time.Since(start).Seconds() },
	}
	g.SetConfig(cfg)
	g.lastAccepted = math.Inf(-1)
	return g
}

// SetClock replaces the gate's time source. The clock must be
// monotonically non-decreasing; its epoch and resolution are up to the
// host.
func (g *Gate) SetClock(now func() float64) {
	if g == nil || now == nil {
		return
	}
	g.now = now
}

// Config returns the gate's current config.
func (g *Gate) Config() Config {
	if g == nil {
		return Config{}
	}
	return g.cfg
}

// SetConfig replaces the gate's config. The contact set exists exactly
// when the timing mode is TimingInitialContact, so any mode change
// drops previously tracked counterparts.
func (g *Gate) SetConfig(cfg Config) {
	if g == nil {
		return
	}
	g.cfg = cfg
	if cfg.Timing == TimingInitialContact {
		g.contacted = make(map[Identity]struct{})
	} else {
		g.contacted = nil
	}
}

// Subscribe registers a listener for forwarded notifications.
func (g *Gate) Subscribe(fn Listener) {
	if g == nil || fn == nil {
		return
	}
	g.listeners = append(g.listeners, fn)
}

// Evaluate decides whether one notification should be forwarded.
// State (cooldown timestamp, contact set) mutates only on acceptance;
// rejections leave the gate untouched. Evaluate never dispatches to
// listeners; use Notify for that.
func (g *Gate) Evaluate(n Notification) Decision {
	if g == nil {
		return Decision{}
	}

	matches := n.Tag == g.cfg.WatchedTag
	if g.cfg.InvertMatch {
		matches = !matches
	}
	if !matches {
		return Decision{}
	}

	strength := n.RelativeVelocity.Length()
	if strength < g.cfg.MinimumStrength {
		return Decision{Strength: strength}
	}

	switch g.cfg.Timing {
	case TimingCooldown:
		now := g.now()
		if now-g.lastAccepted < g.cfg.CooldownSeconds {
			return Decision{Strength: strength}
		}
		g.lastAccepted = now
	case TimingInitialContact:
		// A missing identity means the host could not tell us who the
		// counterpart was; suppressing is the fail-safe choice.
		if n.Counterpart == nil {
			return Decision{Strength: strength}
		}
		if _, seen := g.contacted[n.Counterpart]; seen {
			return Decision{Strength: strength}
		}
		g.contacted[n.Counterpart] = struct{}{}
	}

	return Decision{Forwarded: true, Strength: strength}
}

// Notify evaluates a notification and, when it is forwarded, invokes
// every subscribed listener synchronously on the calling goroutine.
func (g *Gate) Notify(n Notification) Decision {
	d := g.Evaluate(n)
	if !d.Forwarded {
		return d
	}
	for _, fn := range g.listeners {
		if fn != nil {
			fn(n, d.Strength)
		}
	}
	return d
}

// ClearContact forgets one tracked counterpart so its next matching
// notification is forwarded again. No-op when the counterpart is not
// tracked. The gate has no separation signal of its own; the host must
// translate its end-of-contact callback into this call.
func (g *Gate) ClearContact(id Identity) {
	if g == nil || id == nil || g.contacted == nil {
		return
	}
	delete(g.contacted, id)
}

// IsInContact reports whether a counterpart is currently tracked.
// Always false outside TimingInitialContact.
func (g *Gate) IsInContact(id Identity) bool {
	if g == nil || id == nil || g.contacted == nil {
		return false
	}
	_, ok := g.contacted[id]
	return ok
}

// ContactCount returns how many counterparts are currently tracked.
func (g *Gate) ContactCount() int {
	if g == nil {
		return 0
	}
	return len(g.contacted)
}

// ResetContactTracking clears every tracked counterpart and rewinds the
// cooldown timer so the next matching notification always passes the
// timing filter. Called on (re)activation of the owning entity.
func (g *Gate) ResetContactTracking() {
	if g == nil {
		return
	}
	g.lastAccepted = math.Inf(-1)
	if g.cfg.Timing == TimingInitialContact {
		g.contacted = make(map[Identity]struct{})
	} else {
		g.contacted = nil
	}
}
