package services

import (
	"context"
	"testing"

	"github.com/ipatlas/geotrace/internal/geoip"
	"github.com/ipatlas/geotrace/internal/models"
	"github.com/ipatlas/geotrace/internal/principal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	geo   *geoip.GeoData
	err   error
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (*geoip.GeoData, error) {
	s.calls++
	return s.geo, s.err
}

func asPrincipal(u *models.User) principal.Principal {
	return principal.Principal{ID: u.ID, Email: u.Email}
}

func TestLookupAndRecord_Success(t *testing.T) {
	db := setupTestDB(t)
	history := NewHistoryService(db)
	resolver := &stubResolver{geo: &geoip.GeoData{IP: "8.8.8.8", City: "Mountain View", Country: "US"}}
	svc := NewLookupService(resolver, history)
	owner := createTestUser(t, db, "user@example.com", "password123")

	result, err := svc.LookupAndRecord(context.Background(), asPrincipal(owner), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "Mountain View", result.Geo.City)
	assert.Equal(t, owner.ID, result.Record.UserID)
	assert.Equal(t, "8.8.8.8", result.Record.IP)

	records, err := history.List(owner.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.Record.ID, records[0].ID)
}

func TestLookupAndRecord_InvalidIPNeverTouchesDependencies(t *testing.T) {
	db := setupTestDB(t)
	history := NewHistoryService(db)
	resolver := &stubResolver{geo: &geoip.GeoData{}}
	svc := NewLookupService(resolver, history)
	owner := createTestUser(t, db, "user@example.com", "password123")

	for _, ip := range []string{"", "not-an-ip", "999.1.1.1", "::1"} {
		_, err := svc.LookupAndRecord(context.Background(), asPrincipal(owner), ip)
		assert.ErrorIs(t, err, ErrInvalidIP, "ip %q", ip)
	}

	assert.Zero(t, resolver.calls)
	records, err := history.List(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLookupAndRecord_ResolverFailureWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	history := NewHistoryService(db)
	resolver := &stubResolver{err: geoip.ErrUnreachable}
	svc := NewLookupService(resolver, history)
	owner := createTestUser(t, db, "user@example.com", "password123")

	_, err := svc.LookupAndRecord(context.Background(), asPrincipal(owner), "8.8.8.8")
	assert.ErrorIs(t, err, geoip.ErrUnreachable)

	records, err := history.List(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLookupAndRecord_StorageFailureFailsWholeOperation(t *testing.T) {
	db := setupTestDB(t)
	history := NewHistoryService(db)
	resolver := &stubResolver{geo: &geoip.GeoData{IP: "8.8.8.8"}}
	svc := NewLookupService(resolver, history)
	owner := createTestUser(t, db, "user@example.com", "password123")

	require.NoError(t, db.Migrator().DropTable(&models.LookupRecord{}))

	_, err := svc.LookupAndRecord(context.Background(), asPrincipal(owner), "8.8.8.8")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, 1, resolver.calls)
}
