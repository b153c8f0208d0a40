// Package object adapts raw daemon payloads into the typed views the rest
// of the application consumes.
//
// # Overview
//
// The Transmission RPC API returns torrents, files, peers and trackers as
// loosely typed JSON maps whose field names and encodings are the daemon's,
// not ours. A Schema maps each logical key the UI and filters use onto the
// raw fields it needs plus a derivation function, and a View wraps one raw
// payload behind that schema.
//
// Derived values are computed lazily and cached. Update replaces the raw
// payload and invalidates only the cached values whose raw fields actually
// changed, so a poll that touches nothing keeps every cache entry warm.
//
// # Architecture
//
// Views satisfy the filter package's Item interface, so a View can be
// handed straight to a filter chain. RawKeys translates a filter chain's
// needed logical keys into the raw field names a fetch must request.
package object
