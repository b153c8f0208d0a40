package poll

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/trawltui/trawl/internal/filter"
)

const (
	defaultInterval = 2 * time.Second
	maxBackoff      = 30 * time.Second
)

// Fetch retrieves the current item list from the daemon. keys is the union
// of object keys the subscribers need; chain is the OR of every
// subscriber's filter, nil meaning all objects. Implementations may fetch
// more than requested.
type Fetch func(ctx context.Context, keys []string, chain *filter.Chain) ([]filter.Item, error)

// Callback receives one subscriber's filtered items after each fetch. An
// empty slice means no items matched or the fetch failed.
type Callback func(items []filter.Item)

type subscriber struct {
	// chain is the subscriber's filter; nil disables filtering entirely.
	chain *filter.Chain
	keys  []string
	fn    Callback
}

// Pool periodically fetches one object list and dispatches it to
// subscribers through their filter chains.
type Pool struct {
	fetch    Fetch
	interval time.Duration

	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
	epoch  uint64
	cancel context.CancelFunc
	wake   chan struct{}
}

// NewPool builds a pool around one fetch function. A non-positive interval
// falls back to the default cadence.
func NewPool(fetch Fetch, interval time.Duration) *Pool {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Pool{
		fetch:    fetch,
		interval: interval,
		subs:     make(map[int]*subscriber),
		wake:     make(chan struct{}, 1),
	}
}

// Subscription identifies one subscriber for later removal.
type Subscription struct {
	pool *Pool
	id   int
}

// Unsubscribe removes the subscriber. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.pool.mu.Lock()
	defer s.pool.mu.Unlock()
	if _, ok := s.pool.subs[s.id]; ok {
		delete(s.pool.subs, s.id)
		s.pool.epoch++
	}
}

// Subscribe registers a callback behind a filter chain. A nil chain
// receives every item. keys lists object keys the callback reads beyond
// what the chain itself needs. The next fetch reflects the new subscriber;
// a fetch already in flight is discarded.
func (p *Pool) Subscribe(chain *filter.Chain, keys []string, fn Callback) *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.subs[p.nextID] = &subscriber{chain: chain, keys: keys, fn: fn}
	p.epoch++
	return &Subscription{pool: p, id: p.nextID}
}

// SetChain replaces a subscriber's filter chain in place, advancing the
// epoch like a resubscribe.
func (p *Pool) SetChain(s *Subscription, chain *filter.Chain) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sub, ok := p.subs[s.id]; ok {
		sub.chain = chain
		p.epoch++
	}
}

// neededKeys returns the sorted union of every subscriber's keys. Callers
// hold mu.
func (p *Pool) neededKeys() []string {
	seen := map[string]bool{}
	for _, sub := range p.subs {
		if sub.chain != nil {
			for _, k := range sub.chain.NeededKeys() {
				seen[k] = true
			}
		}
		for _, k := range sub.keys {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mergedChain returns the OR of every subscriber's chain, or nil when any
// subscriber wants all objects. Callers hold mu.
func (p *Pool) mergedChain() *filter.Chain {
	var merged *filter.Chain
	for _, sub := range p.subs {
		if sub.chain == nil {
			return nil
		}
		if merged == nil {
			merged = sub.chain
			continue
		}
		merged = merged.Or(sub.chain)
	}
	if merged != nil && merged.MatchesEverything() {
		return nil
	}
	return merged
}

// Run drives the fetch loop until ctx is cancelled. It returns
// immediately.
func (p *Pool) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		failures := 0
		for {
			if err := p.Poll(ctx); err != nil {
				failures++
				log.Printf("poll failed: %v", err)
			} else {
				failures = 0
			}

			timer := time.NewTimer(backoff(failures, p.interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				p.flush()
				return
			case <-p.wake:
				timer.Stop()
			case <-timer.C:
			}
		}
	}()
}

// Wake makes the loop fetch now instead of waiting out the current tick.
func (p *Pool) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Stop ends the fetch loop and delivers a final empty list to every
// subscriber. Stopping an already stopped pool does nothing.
func (p *Pool) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Poll runs one fetch-and-dispatch cycle. Results are discarded when the
// subscriber set changed while the fetch was in flight. A fetch error is
// delivered as empty lists so consumers do not keep showing stale items.
func (p *Pool) Poll(ctx context.Context) error {
	p.mu.Lock()
	epoch := p.epoch
	keys := p.neededKeys()
	chain := p.mergedChain()
	n := len(p.subs)
	p.mu.Unlock()

	if n == 0 {
		return nil
	}

	items, err := p.fetch(ctx, keys, chain)
	if err != nil {
		p.dispatch(epoch, nil)
		return err
	}
	p.dispatch(epoch, items)
	return nil
}

// dispatch fans items out to the subscriber set, unless the epoch moved on.
func (p *Pool) dispatch(epoch uint64, items []filter.Item) {
	p.mu.Lock()
	if p.epoch != epoch {
		p.mu.Unlock()
		return
	}
	type delivery struct {
		fn    Callback
		chain *filter.Chain
	}
	pending := make([]delivery, 0, len(p.subs))
	for _, sub := range p.subs {
		pending = append(pending, delivery{fn: sub.fn, chain: sub.chain})
	}
	p.mu.Unlock()

	for _, d := range pending {
		out := items
		// A sole subscriber takes the fetch result as is: the combined
		// request already carried its chain. With several subscribers each
		// chain filters its own copy.
		if d.chain != nil && len(pending) > 1 {
			out = d.chain.Apply(items)
		}
		d.fn(out)
	}
}

// flush delivers empty lists to every current subscriber.
func (p *Pool) flush() {
	p.mu.Lock()
	pending := make([]Callback, 0, len(p.subs))
	for _, sub := range p.subs {
		pending = append(pending, sub.fn)
	}
	p.mu.Unlock()
	for _, fn := range pending {
		fn(nil)
	}
}

// backoff grows the wait exponentially with consecutive failures, capped
// so a recovering daemon is noticed quickly.
func backoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
