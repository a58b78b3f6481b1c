package geoip

import "encoding/json"

// GeoData is the attribute bag a resolver returns for an IP. The fields
// below are conventionally present but none is guaranteed; any key the
// resolver sends beyond them is preserved in Extra so responses and stored
// history survive resolver schema additions.
type GeoData struct {
	IP       string `json:"ip,omitempty"`
	City     string `json:"city,omitempty"`
	Region   string `json:"region,omitempty"`
	Country  string `json:"country,omitempty"`
	Loc      string `json:"loc,omitempty"` // "lat,lon"
	Org      string `json:"org,omitempty"`
	Postal   string `json:"postal,omitempty"`
	Timezone string `json:"timezone,omitempty"`

	Extra map[string]any `json:"-"`
}

var knownGeoKeys = map[string]bool{
	"ip": true, "city": true, "region": true, "country": true,
	"loc": true, "org": true, "postal": true, "timezone": true,
}

func (g *GeoData) UnmarshalJSON(data []byte) error {
	type alias GeoData
	var known alias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		if knownGeoKeys[key] {
			delete(raw, key)
		}
	}

	*g = GeoData(known)
	if len(raw) > 0 {
		g.Extra = raw
	}
	return nil
}

func (g GeoData) MarshalJSON() ([]byte, error) {
	type alias GeoData
	b, err := json.Marshal(alias(g))
	if err != nil {
		return nil, err
	}
	if len(g.Extra) == 0 {
		return b, nil
	}

	merged := make(map[string]any, len(g.Extra)+8)
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for key, val := range g.Extra {
		if !knownGeoKeys[key] {
			merged[key] = val
		}
	}
	return json.Marshal(merged)
}
