package items

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"quickaction/internal/domain"
	"quickaction/internal/eventbus"
)

// ErrUnavailable wraps every failure to fetch the dynamic item list
var ErrUnavailable = errors.New("quick actions unavailable")

// Result is a loaded item list
type Result struct {
	Items   []domain.ActionItem
	Static  int
	Dynamic int
	Skipped []error // dynamic items rejected by validation
}

// Loader joins the static items with the fetched ones. After the first
// successful load the result is cached and the source is not asked again.
type Loader struct {
	static   []domain.ActionItem
	source   Source
	timeout  time.Duration
	validate func(domain.ActionItem) error
	bus      eventbus.EventBus
	log      *zap.Logger

	mu     sync.Mutex
	cached *Result
}

// Option configures a Loader
type Option func(*Loader)

// WithValidator rejects dynamic items for which fn returns an error
func WithValidator(fn func(domain.ActionItem) error) Option {
	return func(l *Loader) { l.validate = fn }
}

// WithBus publishes load events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(l *Loader) { l.bus = bus }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) { l.log = log.Named("items") }
}

// WithTimeout bounds each fetch
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// NewLoader creates a loader. A nil source means there is no dynamic list.
func NewLoader(static []domain.ActionItem, source Source, opts ...Option) *Loader {
	l := &Loader{
		static: static,
		source: source,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the cached list or fetches it
func (l *Loader) Load(ctx context.Context) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return *l.cached, nil
	}

	res := Result{
		Items:  make([]domain.ActionItem, 0, len(l.static)),
		Static: len(l.static),
	}
	res.Items = append(res.Items, l.static...)

	if l.source != nil {
		if l.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, l.timeout)
			defer cancel()
		}

		l.publish(eventbus.ItemsLoadStartedEvent{URL: sourceURL(l.source)})
		wire, err := l.source.Fetch(ctx)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrUnavailable, err)
			l.log.Warn("item fetch failed", zap.Error(err))
			l.publish(eventbus.ItemsLoadFailedEvent{Err: err})
			return Result{}, err
		}

		for i, w := range wire {
			item, err := l.convert(w)
			if err != nil {
				err = fmt.Errorf("item %d: %w", i, err)
				l.log.Warn("skipping invalid item", zap.Error(err))
				res.Skipped = append(res.Skipped, err)
				continue
			}
			res.Items = append(res.Items, item)
			res.Dynamic++
		}
	}

	l.cached = &res
	l.log.Info("items loaded",
		zap.Int("static", res.Static),
		zap.Int("dynamic", res.Dynamic),
		zap.Int("skipped", len(res.Skipped)))
	l.publish(eventbus.ItemsLoadedEvent{Static: res.Static, Dynamic: res.Dynamic, Skipped: len(res.Skipped)})
	return res, nil
}

func (l *Loader) convert(w domain.WireItem) (domain.ActionItem, error) {
	item, err := w.ToItem()
	if err != nil {
		return domain.ActionItem{}, err
	}
	if l.validate != nil {
		if err := l.validate(item); err != nil {
			return domain.ActionItem{}, fmt.Errorf("%q: %w", item.Label, err)
		}
	}
	return item, nil
}

func (l *Loader) publish(e eventbus.DomainEvent) {
	if l.bus != nil {
		l.bus.Publish(e)
	}
}

func sourceURL(s Source) string {
	if h, ok := s.(*HTTPSource); ok {
		return h.URL
	}
	return ""
}
