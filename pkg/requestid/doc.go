// Package requestid tags every HTTP request with a correlation ID.
//
// A client supplied X-Request-ID is kept when it is at most 128 characters
// of [a-zA-Z0-9_-]; anything else is replaced by a fresh UUID. The ID is
// stored in the request context, echoed in the response header and can be
// added to log records with LoggerExtractor.
package requestid
