package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var (
	_ Logger = (*ZerologAdapter)(nil)
	_ Logger = (*StdLoggerAdapter)(nil)
)

// decode parses the single JSON entry written to buf.
func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log entry %q: %v", buf.String(), err)
	}
	return entry
}

func TestZerologAdapterLevels(t *testing.T) {
	tests := []struct {
		name      string
		log       func(Logger)
		wantLevel string
		wantMsg   string
		wantKeys  map[string]any
	}{
		{
			name:      "info with fields",
			log:       func(l Logger) { l.Info("evaluated", String("engine", "native"), Int("bits", 130)) },
			wantLevel: "info",
			wantMsg:   "evaluated",
			wantKeys:  map[string]any{"engine": "native", "bits": float64(130)},
		},
		{
			name:      "error carries the cause",
			log:       func(l Logger) { l.Error("evaluation failed", errors.New("division by zero"), String("op", "div")) },
			wantLevel: "error",
			wantMsg:   "evaluation failed",
			wantKeys:  map[string]any{"error": "division by zero", "op": "div"},
		},
		{
			name:      "debug",
			log:       func(l Logger) { l.Debug("gc suspended", Uint64("heap_alloc_bytes", 4096)) },
			wantLevel: "debug",
			wantMsg:   "gc suspended",
			wantKeys:  map[string]any{"heap_alloc_bytes": float64(4096)},
		},
		{
			name:      "printf",
			log:       func(l Logger) { l.Printf("listening on :%s", "8080") },
			wantLevel: "info",
			wantMsg:   "listening on :8080",
		},
		{
			name:      "println",
			log:       func(l Logger) { l.Println("shutting", "down") },
			wantLevel: "info",
			wantMsg:   "shutting down",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel)))

			entry := decode(t, &buf)
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["message"] != tt.wantMsg {
				t.Errorf("message = %v, want %q", entry["message"], tt.wantMsg)
			}
			for k, want := range tt.wantKeys {
				if entry[k] != want {
					t.Errorf("%s = %v, want %v", k, entry[k], want)
				}
			}
		})
	}
}

func TestNewLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "server").Info("started")

	entry := decode(t, &buf)
	if entry["component"] != "server" {
		t.Errorf("component = %v, want server", entry["component"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry should be timestamped")
	}
}

func TestZerologAdapterExposesLogger(t *testing.T) {
	var buf bytes.Buffer
	z := NewLogger(&buf, "orchestration").Zerolog()
	z.Info().Str("engine", "big").Msg("done")

	entry := decode(t, &buf)
	if entry["component"] != "orchestration" || entry["engine"] != "big" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestApplyFieldsTypes(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapter(zerolog.New(&buf))
	l.Info("typed",
		Duration("elapsed", 1500*time.Millisecond),
		Field{Key: "ok", Value: true},
		Field{Key: "words", Value: int64(3)},
		Field{Key: "ratio", Value: 0.5},
		Field{Key: "cause", Value: errors.New("boom")},
		Field{Key: "ops", Value: []string{"add", "mul"}},
	)

	entry := decode(t, &buf)
	want := map[string]any{
		"elapsed": float64(1500), // zerolog renders durations in milliseconds
		"ok":      true,
		"words":   float64(3),
		"ratio":   0.5,
		"cause":   "boom",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v (%T), want %v", k, entry[k], entry[k], v)
		}
	}
	if ops, ok := entry["ops"].([]any); !ok || len(ops) != 2 {
		t.Errorf("ops = %v, want a two-element array", entry["ops"])
	}
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug entry written at info level: %s", buf.String())
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name string
		log  func(Logger)
		want string
	}{
		{"info", func(l Logger) { l.Info("request", String("path", "/v1/eval"), Int("status", 200)) }, "[INFO] request path=/v1/eval status=200"},
		{"info without fields", func(l Logger) { l.Info("ready") }, "[INFO] ready\n"},
		{"error", func(l Logger) { l.Error("encode", errors.New("broken pipe")) }, "[ERROR] encode: broken pipe"},
		{"debug", func(l Logger) { l.Debug("tick", Duration("every", time.Second)) }, "[DEBUG] tick every=1s"},
		{"printf", func(l Logger) { l.Printf("%d engines", 4) }, "4 engines"},
		{"println", func(l Logger) { l.Println("a", 1) }, "a 1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}
