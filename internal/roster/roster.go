// Package roster imports the day's staff roster from the upstream roster API.
package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"station-board-backend/config"
	"station-board-backend/internal/parse"
	"station-board-backend/internal/store"
)

// Notifier is told which stations received new staff rows.
type Notifier interface {
	Notify(stationID int64, reason string)
}

// Service pulls roster pages and creates today's staff rows.
type Service struct {
	cfg      *config.RosterConfig
	loc      *time.Location
	store    store.Store
	notifier Notifier
	client   *http.Client
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates and initializes a new roster importer.
func NewService(cfg *config.RosterConfig, loc *time.Location, st store.Store, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			logger.Warn("invalid roster proxy URL, importing without a proxy",
				zap.String("proxy", cfg.HTTPProxy), zap.Error(err))
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Service{
		cfg:      cfg,
		loc:      loc,
		store:    st,
		notifier: notifier,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Run imports immediately and then on every interval until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.Info("roster importer is disabled")
		return
	}
	s.logger.Info("starting roster importer", zap.Duration("interval", s.cfg.Interval))

	s.importLogged(ctx)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("roster importer shutting down")
			return
		case <-timer.C:
			s.importLogged(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

func (s *Service) importLogged(ctx context.Context) {
	if _, err := s.ImportOnce(ctx); err != nil {
		s.logger.Error("roster import failed", zap.Error(err))
	}
}

// ImportOnce fetches every roster page and creates the staff rows that are
// missing for today. It returns the number of rows created. When a later page
// fails, the pages already fetched are imported and the fetch error is still
// returned with that count.
func (s *Service) ImportOnce(ctx context.Context) (int, error) {
	today := parse.OperatingDay(s.now(), s.loc)

	var items []store.RosterItem
	total := 1
	pageSize := s.cfg.Request.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	var fetchErr error
	for page := 1; (page-1)*pageSize < total; page++ {
		resp, err := s.fetchPage(ctx, page, pageSize)
		if err != nil {
			s.logger.Warn("failed to fetch roster page", zap.Int("page", page), zap.Error(err))
			fetchErr = err
			break
		}
		if resp.Data.Total == 0 || len(resp.Data.Items) == 0 {
			break
		}
		total = resp.Data.Total
		items = append(items, resp.Data.Items...)
		s.logger.Debug("fetched roster page",
			zap.Int("page", page), zap.Int("total", total), zap.Int("items", len(items)))
	}

	// Nothing fetched at all: leave the board untouched.
	if fetchErr != nil && len(items) == 0 {
		return 0, fmt.Errorf("roster fetch aborted: %w", fetchErr)
	}
	if len(items) == 0 {
		s.logger.Info("roster import finished: no items", zap.String("work_date", today))
		return 0, nil
	}

	for i := range items {
		normaliseShift(s.logger, &items[i])
	}

	res, err := s.store.ImportStaff(ctx, today, items)
	if err != nil {
		return 0, err
	}
	s.logger.Info("roster import finished",
		zap.String("work_date", today), zap.Int("items", len(items)), zap.Int("created", res.Created))

	if s.notifier != nil {
		for _, stationID := range res.Stations {
			s.notifier.Notify(stationID, "roster_imported")
		}
	}

	// Earlier pages were imported; the missing ones are still an error.
	if fetchErr != nil {
		return res.Created, fmt.Errorf("roster fetch incomplete after %d items: %w", len(items), fetchErr)
	}
	return res.Created, nil
}

// normaliseShift rewrites the shift fields to HH:MM, blanking values that cannot be read.
func normaliseShift(logger *zap.Logger, item *store.RosterItem) {
	for _, f := range []*string{&item.WorkStartTime, &item.WorkEndTime, &item.BreakStartTime, &item.BreakEndTime} {
		v, err := parse.ShiftTime(*f)
		if err != nil {
			logger.Warn("dropping unreadable shift time",
				zap.Int64("station_id", item.StationID), zap.String("staff_name", item.StaffName), zap.Error(err))
			v = ""
		}
		*f = v
	}
}

// fetchPage fetches a single roster page from the upstream API.
func (s *Service) fetchPage(ctx context.Context, page, pageSize int) (*ApiResponse, error) {
	payload := make(map[string]any)
	for k, v := range s.cfg.Request.Payload {
		payload[k] = v
	}
	payload["page"] = page
	payload["pageSize"] = pageSize

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Request.URL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range s.cfg.Request.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp ApiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal api response: %w", err)
	}

	if apiResp.Code != 0 {
		return nil, fmt.Errorf("API returned non-zero application code: %d", apiResp.Code)
	}

	return &apiResp, nil
}
