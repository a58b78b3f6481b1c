package geoip

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// MaxMindResolver resolves IPs against a local GeoLite2 City database.
// Useful when no ipinfo token is available or outbound traffic is not
// wanted; selected with GEO_PROVIDER=maxmind.
type MaxMindResolver struct {
	reader *geoip2.Reader
}

func NewMaxMindResolver(dbPath string) (*MaxMindResolver, error) {
	reader, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open maxmind database: %w", err)
	}
	return &MaxMindResolver{reader: reader}, nil
}

func (r *MaxMindResolver) Resolve(_ context.Context, ip string) (*GeoData, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("%w: unparseable ip %q", ErrNoData, ip)
	}

	record, err := r.reader.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	if record.Country.IsoCode == "" && record.City.GeoNameID == 0 {
		return nil, fmt.Errorf("%w: empty record", ErrNoData)
	}

	geo := &GeoData{
		IP:       ip,
		City:     record.City.Names["en"],
		Country:  record.Country.IsoCode,
		Loc:      fmt.Sprintf("%.4f,%.4f", record.Location.Latitude, record.Location.Longitude),
		Postal:   record.Postal.Code,
		Timezone: record.Location.TimeZone,
	}
	if len(record.Subdivisions) > 0 {
		geo.Region = record.Subdivisions[0].Names["en"]
	}
	return geo, nil
}

func (r *MaxMindResolver) Close() error {
	return r.reader.Close()
}
