// Package api is a thin HTTP client for the forum REST API.
//
// A Client remembers the bearer token returned by Login and attaches it to
// every protected call until Logout or SetToken("") clears it. Transport
// failures are reported as ErrUnavailable; non-2xx replies become *Error
// carrying the status code and the server's {"error": ...} message.
package api
