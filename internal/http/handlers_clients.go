package http

import (
	"net/http"
	"sort"
	"strings"

	"cobro/internal/core"
)

// clientSummary pairs a client with its ledger aggregates for list views.
type clientSummary struct {
	core.Client
	CollectionCount int        `json:"collectionCount"`
	TotalCollected  core.Money `json:"totalCollected"`
	LastCollection  core.Date  `json:"lastCollection,omitempty"`
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listClients(w, r)
	case http.MethodPost:
		s.upsertClient(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	clients, err := s.clients.List(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	collections, err := s.ledger.List(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	byClient := make(map[string][]core.Collection)
	for _, c := range collections {
		byClient[c.ClientID] = append(byClient[c.ClientID], c)
	}

	summaries := make([]clientSummary, 0, len(clients))
	for _, client := range clients {
		entry := clientSummary{Client: client}
		for _, c := range byClient[client.ID] {
			entry.CollectionCount++
			entry.TotalCollected.Cents += c.Amount.Cents
			if c.Date > entry.LastCollection {
				entry.LastCollection = c.Date
			}
		}
		summaries = append(summaries, entry)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})

	writeJSON(w, http.StatusOK, summaries)
}

// upsertClient creates a client, or replaces it in place when the body
// carries an existing id.
func (s *Server) upsertClient(w http.ResponseWriter, r *http.Request) {
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	var client core.Client
	if err := decodeJSON(r, &client); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	saved, err := s.clients.Upsert(r.Context(), session.UserID, client)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateDashboard(session.UserID)
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleClientByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/clients/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getClient(w, r, id)
	case http.MethodDelete:
		s.deleteClient(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request, id string) {
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	client, found, err := s.clients.Get(r.Context(), session.UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, core.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// deleteClient removes the client and reports how many ledger entries now
// reference a missing client. The entries themselves are kept.
func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request, id string) {
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	dangling, err := s.ledger.CountByClient(r.Context(), session.UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.clients.Delete(r.Context(), session.UserID, id); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateDashboard(session.UserID)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "deleted",
		"danglingCollections": dangling,
	})
}
