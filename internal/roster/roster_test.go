package roster

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"station-board-backend/config"
	"station-board-backend/internal/db/dbtest"
	"station-board-backend/internal/model"
	"station-board-backend/internal/store"
)

type pageBody struct {
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
	Total    int                `json:"total"`
	Items    []store.RosterItem `json:"items"`
}

type recordingNotifier struct {
	mu       sync.Mutex
	stations []int64
}

func (r *recordingNotifier) Notify(stationID int64, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stations = append(r.stations, stationID)
}

// importStore records what would be imported without a database.
type importStore struct {
	store.Store
	workDate string
	items    []store.RosterItem
	err      error
}

func (m *importStore) ImportStaff(_ context.Context, workDate string, items []store.RosterItem) (store.ImportResult, error) {
	m.workDate = workDate
	m.items = items
	if m.err != nil {
		return store.ImportResult{}, m.err
	}
	res := store.ImportResult{Created: len(items)}
	seen := make(map[int64]bool)
	for _, it := range items {
		if !seen[it.StationID] {
			seen[it.StationID] = true
			res.Stations = append(res.Stations, it.StationID)
		}
	}
	return res, nil
}

func rosterServer(t *testing.T, pages map[int]pageBody) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	var requests []map[string]any
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		requests = append(requests, payload)
		mu.Unlock()

		page := int(payload["page"].(float64))
		body, ok := pages[page]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 0, "data": body})
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func newTestService(url string, pageSize int, st store.Store, n Notifier) *Service {
	cfg := &config.RosterConfig{
		Enabled:  true,
		Interval: time.Minute,
		Request: config.RosterRequest{
			URL:      url,
			PageSize: pageSize,
			Headers:  map[string]string{"X-Api-Key": "secret"},
			Payload:  map[string]any{"floor": "3F"},
		},
	}
	svc := NewService(cfg, time.UTC, st, n, nil)
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC) }
	return svc
}

func TestImportOnce_FetchesAllPages(t *testing.T) {
	srv, requests := rosterServer(t, map[int]pageBody{
		1: {Page: 1, PageSize: 2, Total: 3, Items: []store.RosterItem{
			{StationID: 63, StaffName: "Kim", WorkStartTime: "8", WorkEndTime: "17:00:00"},
			{StationID: 63, StaffName: "Lee", WorkStartTime: "8시 30분"},
		}},
		2: {Page: 2, PageSize: 2, Total: 3, Items: []store.RosterItem{
			{StationID: 64, StaffName: "Park", BreakStartTime: "lunch"},
		}},
	})
	st := &importStore{}
	n := &recordingNotifier{}
	svc := newTestService(srv.URL, 2, st, n)

	created, err := svc.ImportOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, "2026-10-18", st.workDate)

	require.Len(t, st.items, 3)
	assert.Equal(t, "08:00", st.items[0].WorkStartTime)
	assert.Equal(t, "17:00", st.items[0].WorkEndTime)
	assert.Equal(t, "08:30", st.items[1].WorkStartTime)
	assert.Equal(t, "", st.items[2].BreakStartTime)

	require.Len(t, *requests, 2)
	assert.Equal(t, "3F", (*requests)[0]["floor"])
	assert.Equal(t, float64(2), (*requests)[1]["page"])

	assert.ElementsMatch(t, []int64{63, 64}, n.stations)
}

func TestImportOnce_AbortsWhenNothingFetched(t *testing.T) {
	srv, _ := rosterServer(t, map[int]pageBody{})
	st := &importStore{}
	svc := newTestService(srv.URL, 10, st, nil)

	created, err := svc.ImportOnce(context.Background())
	assert.Error(t, err)
	assert.Zero(t, created)
	assert.Nil(t, st.items)
}

func TestImportOnce_ImportsPartialRosterAndReportsError(t *testing.T) {
	// Page 2 fails; page 1 is still imported and the failure is returned.
	srv, _ := rosterServer(t, map[int]pageBody{
		1: {Page: 1, PageSize: 1, Total: 2, Items: []store.RosterItem{{StationID: 63, StaffName: "Kim"}}},
	})
	st := &importStore{}
	n := &recordingNotifier{}
	svc := newTestService(srv.URL, 1, st, n)

	created, err := svc.ImportOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roster fetch incomplete")
	assert.Equal(t, 1, created)
	require.Len(t, st.items, 1)
	assert.Equal(t, []int64{63}, n.stations)
}

func TestImportOnce_SendsConfiguredPageSizeFallback(t *testing.T) {
	srv, requests := rosterServer(t, map[int]pageBody{
		1: {Page: 1, PageSize: 100, Total: 1, Items: []store.RosterItem{{StationID: 63, StaffName: "Kim"}}},
	})
	svc := newTestService(srv.URL, 0, &importStore{}, nil)

	_, err := svc.ImportOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, *requests, 1)
	assert.Equal(t, float64(100), (*requests)[0]["pageSize"])
}

func TestImportOnce_NotifiesOnlyStationsThatGainedRows(t *testing.T) {
	srv, _ := rosterServer(t, map[int]pageBody{
		1: {Page: 1, PageSize: 10, Total: 3, Items: []store.RosterItem{
			{StationID: 63, StaffName: "Kim"},
			{StationID: 64, StaffName: "Park"},
			{StationID: 99, StaffName: "Ghost"},
		}},
	})
	st := store.NewGormStore(dbtest.New(t), nil)
	ctx := context.Background()
	require.NoError(t, st.CreateStation(ctx, &model.Station{ID: 63, Name: "Endoscopy", Floor: "3F"}))
	require.NoError(t, st.CreateStation(ctx, &model.Station{ID: 64, Name: "Imaging", Floor: "3F"}))
	require.NoError(t, st.AddStaff(ctx, &model.Staff{StationID: 64, StaffName: "Park", WorkDate: "2026-10-18"}))

	n := &recordingNotifier{}
	svc := newTestService(srv.URL, 10, st, n)

	created, err := svc.ImportOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, []int64{63}, n.stations)

	// Nothing new: no events at all.
	n.stations = nil
	created, err = svc.ImportOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Empty(t, n.stations)
}

func TestImportOnce_StoreError(t *testing.T) {
	srv, _ := rosterServer(t, map[int]pageBody{
		1: {Page: 1, PageSize: 10, Total: 1, Items: []store.RosterItem{{StationID: 63, StaffName: "Kim"}}},
	})
	n := &recordingNotifier{}
	svc := newTestService(srv.URL, 10, &importStore{err: errors.New("db down")}, n)

	_, err := svc.ImportOnce(context.Background())
	assert.Error(t, err)
	assert.Empty(t, n.stations)
}

func TestImportOnce_SkipsExistingStaff(t *testing.T) {
	srv, _ := rosterServer(t, map[int]pageBody{
		1: {Page: 1, PageSize: 10, Total: 2, Items: []store.RosterItem{
			{StationID: 63, StaffName: "Kim", StaffType: "nurse"},
			{StationID: 63, StaffName: "Lee", StaffType: "nurse"},
		}},
	})
	st := store.NewGormStore(dbtest.New(t), nil)
	ctx := context.Background()
	require.NoError(t, st.CreateStation(ctx, &model.Station{ID: 63, Name: "Endoscopy", Floor: "3F"}))
	svc := newTestService(srv.URL, 10, st, nil)

	created, err := svc.ImportOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = svc.ImportOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)

	staff, err := st.ListStaff(ctx, 63, "2026-10-18")
	require.NoError(t, err)
	assert.Len(t, staff, 2)
}

func TestRun_Disabled(t *testing.T) {
	svc := newTestService("http://127.0.0.1:1", 10, &importStore{}, nil)
	svc.cfg.Enabled = false

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately when disabled")
	}
}
