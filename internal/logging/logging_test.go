package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-datatable/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logging.New(logging.Options{Level: "DEBUG", Writer: buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Debug().Str("block", "data_table").Msg("block resolved")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["message"] != "block resolved" || entry["block"] != "data_table" || entry["level"] != "debug" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logging.New(logging.Options{Writer: buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Debug().Msg("hidden")
	if strings.TrimSpace(buf.String()) != "" {
		t.Fatalf("debug must be filtered at info level: %q", buf.String())
	}

	if _, err := logging.New(logging.Options{Level: "loud"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestNew_HumanReadable(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logging.New(logging.Options{HumanReadable: true, Writer: buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info().Msg("rendered")
	if !strings.Contains(buf.String(), "rendered") || strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}
