package http

import (
	"net/http"
	"time"

	"cobro/internal/core"
)

// reportResponse is the range report shape. Items carry joined client
// names so the caller can render the list without a second request.
type reportResponse struct {
	From    core.Date        `json:"from"`
	To      core.Date        `json:"to"`
	Total   core.Money       `json:"total"`
	Count   int              `json:"count"`
	Average core.Money       `json:"average"`
	BestDay core.Date        `json:"bestDay"`
	Items   []collectionView `json:"items"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	from := core.Date(r.URL.Query().Get("from"))
	to := core.Date(r.URL.Query().Get("to"))
	if err := core.ValidateRange(from, to); err != nil {
		writeError(w, r, err)
		return
	}

	collections, err := s.ledger.List(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary := core.Summarize(core.FilterByRange(collections, from, to))
	items, err := s.joinClientNames(r, session.UserID, summary.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		From:    from,
		To:      to,
		Total:   summary.Total,
		Count:   summary.Count,
		Average: summary.Average,
		BestDay: summary.BestDay,
		Items:   items,
	})
}

type dashboardResponse struct {
	TodayTotal   core.Money       `json:"todayTotal"`
	MonthTotal   core.Money       `json:"monthTotal"`
	DailyAverage core.Money       `json:"dailyAverage"`
	ClientCount  int              `json:"clientCount"`
	Recent       []collectionView `json:"recent"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	stats, cached := s.dashCache.Get(session.UserID)
	if !cached {
		collections, err := s.ledger.List(r.Context(), session.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		clients, err := s.clients.List(r.Context(), session.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		stats = core.BuildDashboard(collections, len(clients), time.Now())
		s.dashCache.Set(session.UserID, stats)
	}

	recent, err := s.joinClientNames(r, session.UserID, stats.Recent)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		TodayTotal:   stats.TodayTotal,
		MonthTotal:   stats.MonthTotal,
		DailyAverage: stats.DailyAverage,
		ClientCount:  stats.ClientCount,
		Recent:       recent,
	})
}
