package geoip

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoData_UnmarshalKeepsUnknownKeys(t *testing.T) {
	payload := []byte(`{
		"ip": "8.8.8.8",
		"city": "Mountain View",
		"region": "California",
		"country": "US",
		"loc": "37.4056,-122.0775",
		"org": "AS15169 Google LLC",
		"anycast": true,
		"hostname": "dns.google"
	}`)

	var geo GeoData
	require.NoError(t, json.Unmarshal(payload, &geo))

	assert.Equal(t, "8.8.8.8", geo.IP)
	assert.Equal(t, "Mountain View", geo.City)
	assert.Equal(t, "California", geo.Region)
	assert.Equal(t, "US", geo.Country)
	assert.Equal(t, "37.4056,-122.0775", geo.Loc)
	assert.Equal(t, "AS15169 Google LLC", geo.Org)

	require.NotNil(t, geo.Extra)
	assert.Equal(t, true, geo.Extra["anycast"])
	assert.Equal(t, "dns.google", geo.Extra["hostname"])
	assert.NotContains(t, geo.Extra, "city")
}

func TestGeoData_MarshalRoundTrip(t *testing.T) {
	geo := GeoData{
		IP:      "1.1.1.1",
		City:    "Sydney",
		Country: "AU",
		Loc:     "-33.8688,151.2093",
		Extra:   map[string]any{"anycast": true},
	}

	out, err := json.Marshal(geo)
	require.NoError(t, err)

	var decoded GeoData
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, geo.IP, decoded.IP)
	assert.Equal(t, geo.City, decoded.City)
	assert.Equal(t, geo.Country, decoded.Country)
	assert.Equal(t, geo.Loc, decoded.Loc)
	assert.Equal(t, true, decoded.Extra["anycast"])
}

func TestGeoData_MarshalOmitsEmptyFields(t *testing.T) {
	out, err := json.Marshal(GeoData{IP: "1.1.1.1"})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Equal(t, map[string]any{"ip": "1.1.1.1"}, raw)
}
