package http

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"atletica/internal/calendar"
	"atletica/internal/catalog"
	applog "atletica/internal/log"
)

var templateFuncs = template.FuncMap{
	"monthNumber": func(month int) int { return month + 1 },
}

// sessionAction runs against the caller's session while its lock is held.
type sessionAction func(id string, sess *calendar.Session) error

// withSession applies fn to the caller's session and snapshots the result.
// Actions on one session are serialized in arrival order.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn sessionAction) (calendar.View, error) {
	id, entry := s.sessions.acquire(w, r)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if fn != nil {
		if err := fn(id, entry.session); err != nil {
			return calendar.View{}, err
		}
	}
	return entry.session.View(), nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		MethodNotAllowedError("GET, HEAD").Write(w)
		return
	}

	view, _ := s.withSession(w, r, nil)
	s.render(w, r, "index.html", view)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}
	view, _ := s.withSession(w, r, nil)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleWidget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}
	view, _ := s.withSession(w, r, nil)
	s.render(w, r, "calendar_widget", view)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, applog.OpAdvance, (*calendar.Session).Advance)
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, applog.OpRetreat, (*calendar.Session).Retreat)
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request, op string, step func(*calendar.Session) bool) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	view, _ := s.withSession(w, r, func(id string, sess *calendar.Session) error {
		moved := step(sess)
		cur := sess.Cursor()
		s.slog.LogNavigation(r.Context(), id, op, cur.Year, cur.Month, moved)
		return nil
	})
	s.respond(w, r, view, NewHTMXResponse().TriggerMonthChanged(view.Cursor))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	cell, err := parseCellIndex(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.withSession(w, r, func(id string, sess *calendar.Session) error {
		ev, err := sess.SelectCell(cell)
		if err != nil {
			return err
		}
		label := ""
		if ev != nil {
			label = ev.Label
		}
		s.slog.LogSelection(r.Context(), id, applog.OpSelect, cell, label)
		return nil
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calendar.ErrCellOutOfRange) {
			status = http.StatusBadRequest
		}
		s.fail(w, r, status, err.Error())
		return
	}
	s.respond(w, r, view, NewHTMXResponse().TriggerSelectionChanged(view.Selected))
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	view, _ := s.withSession(w, r, func(id string, sess *calendar.Session) error {
		sess.Dismiss()
		s.slog.LogSelection(r.Context(), id, applog.OpDismiss, -1, "")
		return nil
	})
	s.respond(w, r, view, NewHTMXResponse().TriggerSelectionChanged(nil))
}

func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	year, err := parseYear(r, s.window.Min.Year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := catalog.WriteICS(&buf, year, s.index.Records(), s.clock.Now()); err != nil {
		s.slog.LogError(r.Context(), "ICS export failed", err, applog.ComponentCatalog, applog.OpExport, nil)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="atletica-%d.ics"`, year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// respond renders the widget for HTMX callers and JSON for everyone else.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, view calendar.View, b *HTMXResponseBuilder) {
	if !isHTMX(r) {
		writeJSON(w, http.StatusOK, view)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "calendar_widget", view); err != nil {
		s.slog.LogError(r.Context(), "Template execution failed", err, applog.ComponentHTTP, applog.OpRender, nil)
		ErrorResponse(http.StatusInternalServerError, "render failed").Write(w)
		return
	}
	b.BodyHTML(buf.Bytes()).Write(w)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, view calendar.View) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, view); err != nil {
		s.slog.LogError(r.Context(), "Template execution failed", err, applog.ComponentHTTP, applog.OpRender, nil)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if isHTMX(r) {
		ErrorResponse(status, msg).Write(w)
		return
	}
	writeJSONError(w, status, msg)
}
