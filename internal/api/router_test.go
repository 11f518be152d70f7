package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/radarjus/newsradar/internal/aggregator"
	"github.com/radarjus/newsradar/internal/processor"
)

type fakeProvider struct {
	items  []processor.ProcessedItem
	cached bool
	err    error
}

func (f *fakeProvider) GetNews(context.Context) ([]processor.ProcessedItem, bool, error) {
	return f.items, f.cached, f.err
}

func newTestRouter(p NewsProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	NewServer(p).RegisterRoutes(r)
	return r
}

type newsResponse struct {
	Success bool                      `json:"success"`
	Data    []processor.ProcessedItem `json:"data"`
	Cached  bool                      `json:"cached"`
	Error   string                    `json:"error"`
}

func TestGetNewsSuccessShape(t *testing.T) {
	p := &fakeProvider{
		items: []processor.ProcessedItem{
			{Portal: "conjur", Title: "STF decide sobre X", NewsURL: "https://conjur.com.br/a1", PublishedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
			{Portal: "migalhas", Title: "Outra notícia", NewsURL: "https://migalhas.com.br/2"},
		},
		cached: true,
	}
	r := newTestRouter(p)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/news", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Allow-Origin = %q", got)
	}

	var resp newsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || !resp.Cached || len(resp.Data) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Data[0].NewsURL != "https://conjur.com.br/a1" {
		t.Fatalf("unexpected first item: %+v", resp.Data[0])
	}
}

func TestGetNewsPortalFilter(t *testing.T) {
	p := &fakeProvider{items: []processor.ProcessedItem{
		{Portal: "conjur", Title: "a", NewsURL: "https://conjur.com.br/1"},
		{Portal: "stf", Title: "b", NewsURL: "https://noticias.stf.jus.br/2"},
	}}
	r := newTestRouter(p)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/news?portal=stf", nil))

	var resp newsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Portal != "stf" {
		t.Fatalf("filter failed: %+v", resp.Data)
	}
}

func TestGetNewsTotalFailure(t *testing.T) {
	r := newTestRouter(&fakeProvider{err: aggregator.ErrNoNews})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/news", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var resp newsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Success || resp.Error != "Nenhuma notícia encontrada" {
		t.Fatalf("unexpected failure body: %+v", resp)
	}
}

func TestPreflightAnswered(t *testing.T) {
	r := newTestRouter(&fakeProvider{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/news", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "authorization, x-client-info, apikey, content-type" {
		t.Fatalf("Allow-Headers = %q", got)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&fakeProvider{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
}
