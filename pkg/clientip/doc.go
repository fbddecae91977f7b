// Package clientip resolves the address of the client behind reverse
// proxies and CDNs. The resolved address keys rate limits and is added to
// log records.
//
// Forwarding headers are trusted as sent, so the service must only be
// reachable through a proxy that overwrites them.
package clientip
