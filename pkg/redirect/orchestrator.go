// Package redirect bridges locale resolution into a navigation side effect.
//
// The Orchestrator runs exactly once per activation of the unlocalized root
// route: it records the incoming request context, resolves the locale, and
// after a short deliberate delay performs a replacing navigation to the
// locale-prefixed path. The delay exists so the entry diagnostic can flush
// before navigation tears the page context down; the pending navigation is
// tied to the activation context and never fires after cancellation.
package redirect

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pollenlabs/wayfind/pkg/locale"
)

// DefaultDelay is the pause between the decision diagnostic and navigation.
const DefaultDelay = 50 * time.Millisecond

// Navigator performs a replacing navigation: the current unlocalized entry
// must not remain in history. In the server rendition this is a redirect
// response; tests substitute a recording double.
type Navigator interface {
	Replace(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

// Replace calls f.
func (f NavigatorFunc) Replace(path string) { f(path) }

// Activation carries the request context the entry diagnostic records.
type Activation struct {
	URL    string
	Path   string
	Signal string
}

// Orchestrator resolves the visitor's locale and navigates to it.
// Safe for concurrent use; each call to Activate is independent.
type Orchestrator struct {
	set   locale.Set
	delay time.Duration
	log   *slog.Logger
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithDelay sets the pre-navigation delay.
func WithDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.delay = d
	}
}

// WithLogger sets the diagnostic sink.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

// New creates an Orchestrator over the supported locale set.
func New(set locale.Set, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		set:   set,
		delay: DefaultDelay,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Activate runs the redirect flow once and blocks until the navigation has
// fired or ctx was cancelled. It returns the decision that drove the
// navigation. Repeated invocations through the returned trigger are no-ops.
//
// The flow always terminates in a valid locale route: if resolution panics
// the orchestrator recovers, emits an error diagnostic, and navigates to
// the default locale.
func (o *Orchestrator) Activate(ctx context.Context, act Activation, prefs locale.PreferenceStore, nav Navigator) locale.Decision {
	trigger := o.Schedule(ctx, act, prefs, nav)
	return trigger()
}

// Schedule prepares the redirect flow and returns a trigger that runs it.
// The trigger is idempotent: only the first call performs the flow, later
// calls return the same decision. Cancelling ctx before the delay elapses
// aborts the pending navigation.
func (o *Orchestrator) Schedule(ctx context.Context, act Activation, prefs locale.PreferenceStore, nav Navigator) func() locale.Decision {
	var (
		once     sync.Once
		decision locale.Decision
	)

	return func() locale.Decision {
		once.Do(func() {
			decision = o.run(ctx, act, prefs, nav)
		})
		return decision
	}
}

func (o *Orchestrator) run(ctx context.Context, act Activation, prefs locale.PreferenceStore, nav Navigator) locale.Decision {
	// The entry diagnostic precedes any decision so the record exists even
	// if resolution fails below.
	o.log.InfoContext(ctx, "locale redirect activated",
		slog.String("url", act.URL),
		slog.String("path", act.Path),
		slog.String("signal", act.Signal),
		slog.Time("timestamp", time.Now()),
	)

	decision := o.resolve(ctx, act, prefs)

	o.log.InfoContext(ctx, "locale resolved",
		slog.String("locale", decision.Code),
		slog.String("source", string(decision.Source)),
	)
	if decision.PreferenceErr != nil {
		o.log.WarnContext(ctx, "locale preference unavailable",
			slog.String("error", decision.PreferenceErr.Error()))
	}

	if !o.navigateAfterDelay(ctx, nav, "/"+decision.Code) {
		o.log.DebugContext(ctx, "locale redirect cancelled before navigation",
			slog.String("locale", decision.Code))
	}
	return decision
}

// resolve wraps locale.Resolve with a panic guard. Resolution itself is
// total, but a faulty preference store could still panic; the visitor must
// end up on the default locale regardless.
func (o *Orchestrator) resolve(ctx context.Context, act Activation, prefs locale.PreferenceStore) (decision locale.Decision) {
	defer func() {
		if r := recover(); r != nil {
			o.log.ErrorContext(ctx, "locale resolution failed, falling back to default",
				slog.String("panic", fmt.Sprint(r)))
			decision = locale.Decision{Code: o.set.Default(), Source: locale.SourceDefault}
		}
	}()
	return locale.Resolve(ctx, o.set, act.Signal, prefs)
}

// navigateAfterDelay waits for the configured delay, then navigates.
// Returns false when ctx was cancelled first; the navigation does not fire.
func (o *Orchestrator) navigateAfterDelay(ctx context.Context, nav Navigator, path string) bool {
	if o.delay > 0 {
		timer := time.NewTimer(o.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	} else if ctx.Err() != nil {
		return false
	}

	nav.Replace(path)
	return true
}
