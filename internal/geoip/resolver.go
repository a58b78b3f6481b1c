// Package geoip validates IPv4 addresses and resolves them to geographic
// metadata, either through the ipinfo.io HTTP API or a local MaxMind
// database.
package geoip

import (
	"context"
	"errors"
)

var (
	// ErrUnreachable covers transport failures, timeouts and resolver-side
	// 5xx responses. No retries happen here; retry policy belongs to callers.
	ErrUnreachable = errors.New("geolocation resolver unreachable")
	// ErrUnauthorized means the resolver rejected our access credential.
	ErrUnauthorized = errors.New("geolocation resolver rejected credentials")
	// ErrNoData means the resolver has no usable data for the IP.
	ErrNoData = errors.New("no geolocation data for IP")
	// ErrMalformed means a response arrived but could not be decoded.
	ErrMalformed = errors.New("malformed geolocation response")
)

// Resolver maps a validated IPv4 address to geographic metadata.
type Resolver interface {
	Resolve(ctx context.Context, ip string) (*GeoData, error)
}
