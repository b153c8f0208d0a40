// Package poll periodically fetches object lists from the daemon and fans
// them out to subscribers, each through its own filter chain.
//
// # Overview
//
// A Pool owns one fetch function and any number of subscribers. Each
// subscriber declares a filter chain and the extra object keys it needs;
// the pool fetches the union of all needed keys, scoped to the OR of all
// chains, once per tick and hands each subscriber the items its own chain
// matches, so ten views of the same torrent list cost one request.
//
// Subscribing or unsubscribing advances an epoch counter. A fetch that was
// in flight when the subscriber set changed is discarded on return rather
// than delivered against the stale set.
//
// # Architecture
//
// Run drives the fetch loop on a ticker, backing off exponentially while
// the daemon is unreachable. Poll forces one immediate cycle, which the UI
// uses right after changing a filter. Stop is idempotent and delivers a
// final empty list so consumers clear their views.
package poll
