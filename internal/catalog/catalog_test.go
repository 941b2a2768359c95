package catalog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"atletica/internal/core"
)

func TestBuiltin(t *testing.T) {
	events := Builtin()
	if len(events) != 2 {
		t.Fatalf("got %d builtin events", len(events))
	}
	for _, ev := range events {
		if err := ev.Validate(); err != nil {
			t.Fatalf("builtin event %+v invalid: %v", ev, err)
		}
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
events:
  - day: 11
    month: 2
    label: Semáforo
  - day: 12
    month: 2
    label: Calourada
`
	events, err := DecodeYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if !reflect.DeepEqual(events, Builtin()) {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeYAMLRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"bad month", "events:\n  - {day: 1, month: 12, label: x}\n", core.ErrInvalidMonth},
		{"bad day", "events:\n  - {day: 0, month: 1, label: x}\n", core.ErrInvalidDay},
		{"empty label", "events:\n  - {day: 1, month: 1, label: ''}\n", core.ErrEmptyLabel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeYAML(strings.NewReader(tc.doc)); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := DecodeYAML(strings.NewReader("events:\n  - {day: 1, mont: 1, label: x}\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestDecodeYAMLEmpty(t *testing.T) {
	events, err := DecodeYAML(strings.NewReader(""))
	if err != nil || len(events) != 0 {
		t.Fatalf("empty document: %v, %v", events, err)
	}
}

func TestYAMLRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	var buf bytes.Buffer
	if err := EncodeYAML(&buf, Builtin()); err != nil {
		t.Fatalf("EncodeYAML: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	events, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if !reflect.DeepEqual(events, Builtin()) {
		t.Fatalf("events = %+v", events)
	}
}

func TestLoadSources(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "events.yaml")
	if err := os.WriteFile(yamlPath, []byte("events:\n  - {day: 25, month: 11, label: Natal}\n"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Load(ctx, Config{Source: BuiltinSource}, nil)
	if err != nil || len(got) != 2 {
		t.Fatalf("builtin: %v, %v", got, err)
	}

	got, err = Load(ctx, Config{Source: YAMLSource, EventsFile: yamlPath}, nil)
	if err != nil || len(got) != 1 || got[0].Label != "Natal" {
		t.Fatalf("yaml: %v, %v", got, err)
	}

	got, err = Load(ctx, Config{Source: SQLiteSource, SQLiteDBPath: filepath.Join(dir, "atletica.db")}, nil)
	if err != nil || !reflect.DeepEqual(got, Builtin()) {
		t.Fatalf("sqlite: %v, %v", got, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	ctx := context.Background()
	bad := []Config{
		{Source: "sheets"},
		{Source: YAMLSource},
		{Source: SQLiteSource},
	}
	for _, cfg := range bad {
		if _, err := Load(ctx, cfg, nil); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
	if _, err := Load(ctx, Config{Source: YAMLSource, EventsFile: "/non/existent.yaml"}, nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestBuildICS(t *testing.T) {
	stamp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	events := append(Builtin(), core.EventRecord{Day: 29, Month: 1, Label: "Bissexto"})

	var buf bytes.Buffer
	if err := WriteICS(&buf, 2026, events, stamp); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		ProductID,
		"UID:20260311-semaforo@atletica",
		"UID:20260312-calourada@atletica",
		"SUMMARY:Semáforo",
		"20260311",
		"20260313",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ics missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Bissexto") {
		t.Errorf("29 February should be skipped in 2026")
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("got %d VEVENTs, want 2", got)
	}

	leap := BuildICS(2028, events, stamp).Serialize()
	if !strings.Contains(leap, "Bissexto") {
		t.Errorf("29 February should be exported in 2028")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Semáforo":        "semaforo",
		"Calourada":       "calourada",
		"Festa de Março!": "festa-de-marco",
		"  Jogos  2026 ":  "jogos-2026",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildICSUniqueUIDs(t *testing.T) {
	stamp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	events := []core.EventRecord{
		{Day: 11, Month: 2, Label: "Semáforo"},
		{Day: 11, Month: 2, Label: "SEMÁFORO!"},
		{Day: 11, Month: 2, Label: "!!!"},
		{Day: 11, Month: 2, Label: "???"},
	}

	out := BuildICS(2026, events, stamp).Serialize()
	for _, want := range []string{
		"UID:20260311-semaforo@atletica",
		"UID:20260311-semaforo-1@atletica",
		"UID:20260311-event@atletica",
		"UID:20260311-event-3@atletica",
	} {
		if !strings.Contains(out, want+"\r\n") && !strings.Contains(out, want+"\n") {
			t.Errorf("ics missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "20260311-@atletica") {
		t.Errorf("empty slug leaked into a UID")
	}
}
