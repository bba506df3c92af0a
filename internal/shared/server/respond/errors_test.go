package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/files/:id", func(c *gin.Context) {
		Error(c, http.StatusNotFound, "not_found", "file not found", nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/files/abc", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.StatusCode != http.StatusNotFound || body.Path != "/api/files/abc" || body.Method != http.MethodGet {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if body.Message != "file not found" || body.Error != "not_found" {
		t.Fatalf("unexpected message: %+v", body)
	}
	if body.Timestamp == "" {
		t.Fatalf("expected timestamp")
	}
}

func TestInternalHidesErrorDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		Internal(c, errors.New("pq: relation files does not exist"), "list files")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Internal server error" {
		t.Fatalf("expected generic message, got %q", body.Message)
	}
}

type pagingQuery struct {
	Page  *int   `form:"page" binding:"omitempty,min=1"`
	Owner string `form:"ownerId" binding:"omitempty,uuid"`
}

func TestBindErrorListsFieldMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/items", func(c *gin.Context) {
		var q pagingQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			BindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/items?page=0&ownerId=nope", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Message string   `json:"message"`
		Details []string `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Details) != 2 {
		t.Fatalf("expected 2 details, got %v", body.Details)
	}
	if body.Details[0] != "page must not be less than 1" {
		t.Fatalf("unexpected page message: %s", body.Details[0])
	}
	if body.Details[1] != "ownerId must be a UUID" {
		t.Fatalf("unexpected owner message: %s", body.Details[1])
	}
}

func TestBindErrorMalformedInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/items", func(c *gin.Context) {
		var q pagingQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			BindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/items?page=abc", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestReasonStripsSentinelPrefix(t *testing.T) {
	errInvalid := errors.New("invalid input")

	wrapped := fmt.Errorf("%w: email already registered", errInvalid)
	if got := Reason(wrapped, errInvalid); got != "email already registered" {
		t.Fatalf("unexpected reason %q", got)
	}
	if got := Reason(errInvalid, errInvalid); got != "invalid input" {
		t.Fatalf("bare sentinel should keep its message, got %q", got)
	}
}
