package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ipatlas/geotrace/internal/geoip"
	"github.com/ipatlas/geotrace/internal/models"
	"github.com/ipatlas/geotrace/internal/principal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrStorageUnavailable wraps any persistence failure in the history store.
var ErrStorageUnavailable = errors.New("history storage unavailable")

// HistoryService is the owner-scoped, append-only store of lookup records.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Append persists a new lookup record for the owner.
func (s *HistoryService) Append(ownerID uuid.UUID, ip string, geo *geoip.GeoData) (*models.LookupRecord, error) {
	payload, err := json.Marshal(geo)
	if err != nil {
		return nil, fmt.Errorf("failed to encode geo data: %w", err)
	}

	record := models.LookupRecord{
		ID:      uuid.New(),
		UserID:  ownerID,
		IP:      ip,
		GeoData: datatypes.JSON(payload),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &record, nil
}

// List returns the owner's records, most recent first. No history is an
// empty slice, never an error.
func (s *HistoryService) List(ownerID uuid.UUID) ([]models.LookupRecord, error) {
	records := make([]models.LookupRecord, 0)
	err := s.db.Scopes(principal.ForOwner(ownerID)).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return records, nil
}

// DeleteMany removes exactly the given ids that belong to the owner and
// returns how many went away. Ids owned by someone else are silently
// ignored. The whole call is one DELETE statement, so concurrent readers
// never see a partial deletion.
func (s *HistoryService) DeleteMany(ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := s.db.Scopes(principal.ForOwner(ownerID)).
		Where("id IN ?", ids).
		Delete(&models.LookupRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, result.Error)
	}

	return result.RowsAffected, nil
}
