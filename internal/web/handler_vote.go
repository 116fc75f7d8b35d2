package web

import (
	"net/http"
	"strings"

	"github.com/vbonduro/shorescore/internal/domain"
)

type scoreRequest struct {
	Score int `json:"score"`
}

type accountView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type voteView struct {
	Kind     domain.VoteKind `json:"kind"`
	ParentID int64           `json:"parentId"`
	Score    int             `json:"score"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.badRequest(w, "account name required")
		return
	}

	account, err := s.votes.CreateAccount(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, accountView{ID: account.ID, Name: account.Name})
}

func (s *Server) handleAccountVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := s.votes.AccountVotes(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]voteView, 0, len(votes))
	for _, v := range votes {
		views = append(views, voteView{Kind: v.Kind, ParentID: v.ParentID, Score: v.Score})
	}
	s.writeJSON(w, http.StatusOK, views)
}

// handleGetTag returns the tag projection for the calling account, if any.
func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.badRequest(w, "invalid tag id")
		return
	}

	update, err := s.votes.TagUpdate(r.Context(), r.Header.Get(accountHeader), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, update)
}

func (s *Server) handleVoteTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.badRequest(w, "invalid tag id")
		return
	}
	accountID, ok := s.requireAccount(w, r)
	if !ok {
		return
	}

	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	if _, err := s.votes.VoteTag(r.Context(), accountID, id, req.Score); err != nil {
		s.writeError(w, r, err)
		return
	}

	update, err := s.votes.TagUpdate(r.Context(), accountID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, update)
}

func (s *Server) handleGetFeature(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.badRequest(w, "invalid feature id")
		return
	}

	feature, err := s.votes.GetFeature(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newFeatureView(feature))
}

func (s *Server) handleScoreFeature(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.badRequest(w, "invalid feature id")
		return
	}
	accountID, ok := s.requireAccount(w, r)
	if !ok {
		return
	}

	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	feature, err := s.votes.ScoreFeature(r.Context(), accountID, id, req.Score)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newFeatureView(feature))
}
