package store

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"station-board-backend/internal/model"
)

// orderedStations scopes q to a floor sorted by display_order (nulls last), then station ID.
func orderedStations(q *gorm.DB, floor string) *gorm.DB {
	return q.Where("floor = ?", floor).
		Order("CASE WHEN display_order IS NULL THEN 1 ELSE 0 END").
		Order("display_order ASC").
		Order("id ASC")
}

// GetStationOrder returns the floor's stations in display order with their 1-based position.
func (s *gormStore) GetStationOrder(ctx context.Context, floor string) ([]StationOrder, error) {
	floor = strings.TrimSpace(floor)
	if floor == "" {
		return nil, InvalidInput("floor is required")
	}

	var stations []model.Station
	if err := orderedStations(s.db.WithContext(ctx).Select("id", "name", "display_order"), floor).
		Find(&stations).Error; err != nil {
		return nil, dbError(err, "")
	}

	order := make([]StationOrder, len(stations))
	for i, st := range stations {
		order[i] = StationOrder{
			StationID:    st.ID,
			StationName:  st.Name,
			DisplayOrder: st.DisplayOrder,
			Position:     i + 1,
		}
	}
	return order, nil
}

// SaveStationOrder writes each entry as its own atomic update. Stations that
// are not on floor are skipped; a failing station does not undo the others.
// A station listed more than once is written once, with its last position.
func (s *gormStore) SaveStationOrder(ctx context.Context, floor string, entries []OrderEntry) (SaveOrderResult, error) {
	var result SaveOrderResult
	floor = strings.TrimSpace(floor)
	if floor == "" {
		return result, InvalidInput("floor is required")
	}
	for _, e := range entries {
		if e.StationID <= 0 {
			return result, InvalidInput("station_id must be positive")
		}
		if e.OrderPosition < 0 {
			return result, InvalidInput("order_position must not be negative")
		}
	}

	var errs []error
	for _, e := range collapseEntries(entries) {
		res := s.db.WithContext(ctx).
			Model(&model.Station{}).
			Where("id = ? AND floor = ?", e.StationID, floor).
			Update("display_order", e.OrderPosition)
		if res.Error != nil {
			s.logger.Warn("failed to save station order",
				zap.Int64("station_id", e.StationID), zap.String("floor", floor), zap.Error(res.Error))
			result.Failed = append(result.Failed, e.StationID)
			errs = append(errs, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			result.Skipped++
			continue
		}
		result.Updated++
	}

	if len(errs) > 0 && result.Updated == 0 {
		return result, dbError(errors.Join(errs...), "")
	}
	return result, nil
}

// collapseEntries keeps one entry per station, the last position given wins.
func collapseEntries(entries []OrderEntry) []OrderEntry {
	index := make(map[int64]int, len(entries))
	out := make([]OrderEntry, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.StationID]; ok {
			out[i].OrderPosition = e.OrderPosition
			continue
		}
		index[e.StationID] = len(out)
		out = append(out, e)
	}
	return out
}

// ResetStationOrder clears every display_order override on floor.
func (s *gormStore) ResetStationOrder(ctx context.Context, floor string) (int64, error) {
	floor = strings.TrimSpace(floor)
	if floor == "" {
		return 0, InvalidInput("floor is required")
	}
	res := s.db.WithContext(ctx).
		Model(&model.Station{}).
		Where("floor = ? AND display_order IS NOT NULL", floor).
		Update("display_order", nil)
	if res.Error != nil {
		return 0, dbError(res.Error, "")
	}
	return res.RowsAffected, nil
}
