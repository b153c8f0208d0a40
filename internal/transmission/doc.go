// Package transmission talks to the Transmission daemon's RPC API.
//
// # Overview
//
// The API is JSON over a single POST endpoint. Every request names a
// method and carries an arguments object; every response wraps its
// arguments in an envelope with a result string, where anything but
// "success" is an error. The daemon guards against CSRF with a session id
// header: the first request is answered with 409 and the id to use, and
// the client retries with it transparently.
//
// Torrent payloads are returned as loosely typed maps rather than structs.
// The set of fields a caller needs varies per request and the object
// package owns the interpretation of each field, so decoding into fixed
// structs would only add a second schema to maintain.
package transmission
