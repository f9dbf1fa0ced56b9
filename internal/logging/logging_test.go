package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msomdec/notebook/internal/config"
)

func TestNewLogger_WritesTextAndJSON(t *testing.T) {
	var text, js bytes.Buffer
	logger := newLogger(&text, &js, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger.Info("note created", "note_id", 42)
	logger.Debug("hidden")

	if !strings.Contains(text.String(), "note created") || !strings.Contains(text.String(), "note_id=42") {
		t.Fatalf("unexpected text output %q", text.String())
	}
	if strings.Contains(text.String(), "hidden") {
		t.Fatal("debug record should be filtered at info level")
	}

	var rec map[string]any
	if err := json.Unmarshal(js.Bytes(), &rec); err != nil {
		t.Fatalf("decode JSON record: %v", err)
	}
	if rec["msg"] != "note created" || rec["note_id"] != float64(42) {
		t.Fatalf("unexpected JSON record %v", rec)
	}
}

func TestNew_WritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closer := New(&config.Config{
		LogLevel:      slog.LevelInfo,
		LogFile:       path,
		LogMaxSizeMB:  1,
		LogMaxBackups: 1,
		LogMaxAgeDays: 1,
	})

	logger.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to file"`) {
		t.Fatalf("expected JSON record in file, got %q", data)
	}
}
