package http

import (
	"net/http"
	"strings"

	"cobro/internal/core"
)

// collectionView joins a ledger entry with its client's display name.
type collectionView struct {
	core.Collection
	ClientName string `json:"clientName"`
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listCollections(w, r)
	case http.MethodPost:
		s.recordCollection(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) listCollections(w http.ResponseWriter, r *http.Request) {
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	collections, err := s.ledger.List(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views, err := s.joinClientNames(r, session.UserID, core.SortByDateTimeDesc(collections))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (s *Server) recordCollection(w http.ResponseWriter, r *http.Request) {
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	var collection core.Collection
	if err := decodeJSON(r, &collection); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	saved, err := s.ledgerSvc.Record(r.Context(), session.UserID, collection)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateDashboard(session.UserID)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleCollectionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/collections/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}

	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	// Deleting an unknown id is a silent no-op, same as the ledger.
	if err := s.ledgerSvc.Remove(r.Context(), session.UserID, id); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateDashboard(session.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// joinClientNames resolves client display names, labeling entries whose
// client was deleted instead of dropping them.
func (s *Server) joinClientNames(r *http.Request, userID string, collections []core.Collection) ([]collectionView, error) {
	clients, err := s.clients.List(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}

	views := make([]collectionView, 0, len(collections))
	for _, c := range collections {
		name, ok := names[c.ClientID]
		if !ok {
			name = core.DeletedClientLabel
		}
		views = append(views, collectionView{Collection: c, ClientName: name})
	}
	return views, nil
}
