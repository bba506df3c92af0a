package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(ctx context.Context) error {
	_ = ctx
	return f.err
}

func serveHealth(t *testing.T, svc *Service) (*httptest.ResponseRecorder, Report) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var report Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec, report
}

func TestHealthUp(t *testing.T) {
	rec, report := serveHealth(t, NewService(fakePinger{}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if report.Status != StatusOK || report.Info["database"].Status != "up" || len(report.Error) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestHealthDatabaseDown(t *testing.T) {
	rec, report := serveHealth(t, NewService(fakePinger{err: errors.New("connection refused")}))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if report.Status != StatusError || report.Error["database"].Message != "connection refused" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestHealthMemoryMode(t *testing.T) {
	rec, report := serveHealth(t, NewService(nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if report.Info["database"].Status != "memory" {
		t.Fatalf("unexpected report: %+v", report)
	}
}
