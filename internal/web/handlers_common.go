// Package web provides HTTP handlers for the employee panel.
// This file contains shared utilities and helper functions used across handlers.
package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/hrpanel/internal/core"
	"github.com/JonMunkholm/hrpanel/internal/logging"
	"github.com/JonMunkholm/hrpanel/internal/web/middleware"
	"github.com/JonMunkholm/hrpanel/internal/web/templates"
)

// render writes c with a 200 status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	s.renderStatus(w, r, http.StatusOK, c)
}

// renderStatus writes c as HTML with the given status.
func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// redirect sends the browser to target. htmx requests get HX-Redirect so the
// whole page changes rather than the swap target.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// loadState returns the session state, fetching on first use or when the
// query asks for refresh. A failed fetch is returned as fetchErr next to a
// usable state; err is set only when no state could be produced.
func (s *Server) loadState(r *http.Request) (st core.State, fetchErr, err error) {
	sid := middleware.SessionID(r)
	if r.URL.Query().Get("refresh") != "" {
		st, fetchErr = s.service.Refresh(r.Context(), sid)
	} else {
		st, fetchErr = s.service.State(r.Context(), sid)
	}
	if fetchErr != nil && !st.Mounted {
		return core.State{}, nil, fetchErr
	}
	return st, fetchErr, nil
}

// queryActions turns table query parameters into the actions that change
// st. Parameters matching the current state produce nothing, so reloading a
// URL never resets the page. A page given alongside a filter change is
// applied after it and clamped to the pages the new filters leave.
func queryActions(q url.Values, st core.State) []core.Action {
	var actions []core.Action
	if v, ok := param(q, "department"); ok && v != st.Params.Department {
		actions = append(actions, core.SetDepartment{Department: v})
	}
	if v, ok := param(q, "status"); ok && v != st.Params.Status {
		actions = append(actions, core.SetStatus{Status: v})
	}
	if v, ok := param(q, "sort"); ok {
		if order := core.ParseSortOrder(v); order != st.Params.Sort {
			actions = append(actions, core.SetSort{Sort: order})
		}
	}
	if v, ok := param(q, "page"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			next := st
			for _, a := range actions {
				next = core.Reduce(next, a)
			}
			if p = core.ClampPage(p, next.PageCount()); p != next.Page {
				actions = append(actions, core.SetPage{Page: p})
			}
		}
	}
	return actions
}

func param(q url.Values, name string) (string, bool) {
	if !q.Has(name) {
		return "", false
	}
	return q.Get(name), true
}

// isLocal reports whether the request addresses an imported row.
func isLocal(r *http.Request) bool {
	return r.FormValue("local") == "1"
}

// page wraps body in the layout with the title used for nav.
func page(nav templates.Nav, body templ.Component) templ.Component {
	title := "Dashboard"
	if nav == templates.NavEmployees {
		title = "Data Karyawan"
	}
	return templates.Layout(title, nav, body)
}
