package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "info")
	defer Configure(os.Stdout, "info")

	Info("file.uploaded", map[string]any{"file_id": "f-1", "size": 42})

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["level"] != "info" {
		t.Fatalf("expected level=info, got %v", payload["level"])
	}
	if payload["msg"] != "file.uploaded" {
		t.Fatalf("expected msg=file.uploaded, got %v", payload["msg"])
	}
	if payload["file_id"] != "f-1" {
		t.Fatalf("expected file_id field, got %v", payload["file_id"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}

func TestErrorFieldsAreStringified(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "info")
	defer Configure(os.Stdout, "info")

	Error("db.failure", map[string]any{"error": errors.New("connection refused")})

	if !strings.Contains(buf.String(), `"error":"connection refused"`) {
		t.Fatalf("expected stringified error, got %s", buf.String())
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "info")
	defer Configure(os.Stdout, "info")

	Debug("noisy", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %s", buf.String())
	}
}
