// Package api is a client for the quiz platform's REST API.
//
// All list endpoints return JSON arrays; a null body decodes to an empty
// slice. Non-2xx responses are returned as *StatusError, and a 404 matches
// ErrNotFound with errors.Is. Each request carries an X-Request-ID and, when
// the context has one, the command's trace ID.
package api
