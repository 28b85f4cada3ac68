package admin

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminapp "github.com/snhrk2951/illumi-contest-services/api/internal/admin/application"
	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

type stubEntryService struct {
	entries    []entrydomain.Entry
	entry      *entrydomain.Entry
	photos     []entrydomain.Photo
	err        error
	lastFilter adminapp.EntryFilter
	lastReason string
}

func (s *stubEntryService) List(_ context.Context, filter adminapp.EntryFilter) ([]entrydomain.Entry, error) {
	s.lastFilter = filter
	return s.entries, s.err
}

func (s *stubEntryService) Detail(context.Context, string) (*entrydomain.Entry, []entrydomain.Photo, error) {
	return s.entry, s.photos, s.err
}

func (s *stubEntryService) Approve(context.Context, string) (*entrydomain.Entry, error) {
	return s.entry, s.err
}

func (s *stubEntryService) Reject(_ context.Context, _ string, reason string) (*entrydomain.Entry, error) {
	s.lastReason = reason
	return s.entry, s.err
}

func (s *stubEntryService) Delete(context.Context, string) error {
	return s.err
}

func newTestRouter(t *testing.T, service adminapp.EntryService) chi.Router {
	t.Helper()

	handler := NewHandler(Config{
		Logger:       log.New(io.Discard, "", 0),
		EntryService: service,
	})
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

func sampleEntry(status entrydomain.Status) *entrydomain.Entry {
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	return &entrydomain.Entry{
		ID:        "651234567890abcdef123456",
		OwnerID:   "user-1",
		Status:    status,
		Name:      "灯りの丘",
		Address:   entrydomain.Address{Text: "相模原市緑区橋本2-4-6", PlaceKey: "place-2"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestEntryListHandler_StatusFilter(t *testing.T) {
	service := &stubEntryService{entries: []entrydomain.Entry{*sampleEntry(entrydomain.StatusSubmitted)}}
	router := newTestRouter(t, service)

	req := httptest.NewRequest(http.MethodGet, "/entries?status=submitted", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, service.lastFilter.Status)
	assert.Equal(t, entrydomain.StatusSubmitted, *service.lastFilter.Status)
}

func TestEntryListHandler_InvalidStatus(t *testing.T) {
	router := newTestRouter(t, &stubEntryService{})

	req := httptest.NewRequest(http.MethodGet, "/entries?status=bogus", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEntryApproveHandler(t *testing.T) {
	entry := sampleEntry(entrydomain.StatusApproved)
	number := 3
	entry.EntryNumber = &number
	router := newTestRouter(t, &stubEntryService{entry: entry})

	req := httptest.NewRequest(http.MethodPost, "/entries/651234567890abcdef123456/approve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "approved", res["status"])
	assert.Equal(t, float64(3), res["entryNumber"])
}

func TestEntryApproveHandler_WrongState(t *testing.T) {
	service := &stubEntryService{err: &entrydomain.StateMismatchError{
		EntryID:  "651234567890abcdef123456",
		Expected: entrydomain.StatusSubmitted,
		Actual:   entrydomain.StatusDraft,
	}}
	router := newTestRouter(t, service)

	req := httptest.NewRequest(http.MethodPost, "/entries/651234567890abcdef123456/approve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEntryRejectHandler(t *testing.T) {
	entry := sampleEntry(entrydomain.StatusRejected)
	service := &stubEntryService{entry: entry}
	router := newTestRouter(t, service)

	body := strings.NewReader(`{"reason":"開催エリア外のため"}`)
	req := httptest.NewRequest(http.MethodPost, "/entries/651234567890abcdef123456/reject", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "開催エリア外のため", service.lastReason)
}

func TestEntryDeleteHandler_NotFound(t *testing.T) {
	router := newTestRouter(t, &stubEntryService{err: entrydomain.ErrNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/entries/651234567890abcdef123456", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
