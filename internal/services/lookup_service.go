package services

import (
	"context"
	"errors"

	"github.com/ipatlas/geotrace/internal/geoip"
	"github.com/ipatlas/geotrace/internal/models"
	"github.com/ipatlas/geotrace/internal/principal"
)

// ErrInvalidIP is returned before the resolver or storage is touched.
var ErrInvalidIP = errors.New("invalid IPv4 address")

type LookupResult struct {
	Geo    *geoip.GeoData
	Record *models.LookupRecord
}

// LookupService composes validation, resolution and recording into one
// request/response unit.
type LookupService struct {
	resolver geoip.Resolver
	history  *HistoryService
}

func NewLookupService(resolver geoip.Resolver, history *HistoryService) *LookupService {
	return &LookupService{resolver: resolver, history: history}
}

// LookupAndRecord resolves the IP and appends a history record for the
// principal. The contract is record-or-fail: a successful resolution whose
// record cannot be persisted fails the whole operation, so callers never
// see geo data that is absent from their history.
func (s *LookupService) LookupAndRecord(ctx context.Context, p principal.Principal, ip string) (*LookupResult, error) {
	if !geoip.ValidIPv4(ip) {
		return nil, ErrInvalidIP
	}

	geo, err := s.resolver.Resolve(ctx, ip)
	if err != nil {
		return nil, err
	}

	record, err := s.history.Append(p.ID, ip, geo)
	if err != nil {
		return nil, err
	}

	return &LookupResult{Geo: geo, Record: record}, nil
}
