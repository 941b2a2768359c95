package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atletica/internal/core"
)

func TestHTMXResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		Status(http.StatusOK).
		BodyHTML([]byte("<p>test</p>")).
		Write(w)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "<p>test</p>" {
		t.Errorf("Body = %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHTMXResponseBuilder_Triggers(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		TriggerMonthChanged(core.YearMonth{Year: 2026, Month: 2}).
		TriggerSelectionChanged(&core.EventRecord{Day: 11, Month: 2, Label: "Semáforo"}).
		Write(w)

	trigger := w.Header().Get("HX-Trigger")
	if trigger == "" {
		t.Fatal("HX-Trigger header not set")
	}
	for _, part := range []string{
		`"calendar:month-changed"`,
		`"year":2026`,
		`"month":2`,
		`"calendar:selection-changed"`,
		`"label":"Semáforo"`,
	} {
		if !strings.Contains(trigger, part) {
			t.Errorf("HX-Trigger missing %q: %s", part, trigger)
		}
	}
}

func TestHTMXResponseBuilder_ClearedSelection(t *testing.T) {
	w := httptest.NewRecorder()
	NewHTMXResponse().TriggerSelectionChanged(nil).Write(w)
	if !strings.Contains(w.Header().Get("HX-Trigger"), `"label":""`) {
		t.Errorf("HX-Trigger = %s", w.Header().Get("HX-Trigger"))
	}
}

func TestErrorResponse_Escapes(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(http.StatusBadRequest, "<script>x</script>").Write(w)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "<script>") {
		t.Errorf("message not escaped: %s", w.Body.String())
	}
}

func TestMethodNotAllowedError(t *testing.T) {
	w := httptest.NewRecorder()
	MethodNotAllowedError("POST").Write(w)
	if w.Code != http.StatusMethodNotAllowed || w.Header().Get("Allow") != "POST" {
		t.Errorf("status=%d allow=%q", w.Code, w.Header().Get("Allow"))
	}
}
