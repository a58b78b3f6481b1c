package dto

import (
	"github.com/google/uuid"
	"github.com/ipatlas/geotrace/internal/geoip"
)

type LookupRequest struct {
	IP string `json:"ip"`
}

type LookupResponse struct {
	GeoData *geoip.GeoData `json:"geoData"`
	IP      string         `json:"ip"`
}

type DeleteHistoryRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type DeleteHistoryResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
