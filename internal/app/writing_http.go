package app

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/prep-maker/backend/internal/validate"
)

var stateQueryValues = []string{"done", "editing"}

func (s *Server) userParamChain() validate.Chain {
	return validate.Chain{
		validate.UUIDParam("userId", msgInvalidUserID),
		validate.ExistingParam("userId", s.userExists, msgNotFoundUser),
	}
}

func (s *Server) writingParamChain() validate.Chain {
	return validate.Chain{
		validate.UUIDParam("writingId", msgInvalidWritingID),
		validate.ExistingParam("writingId", s.writingExists, msgNotFoundWriting),
	}
}

func (s *Server) getWritingsChain() validate.Chain {
	return append(s.userParamChain(),
		validate.QueryOneOf("state", stateQueryValues, msgInvalidStateQuery),
	)
}

func (s *Server) removeWritingChain() validate.Chain {
	return append(s.userParamChain(), s.writingParamChain()...)
}

func (s *Server) updateWritingChain() validate.Chain {
	return append(s.writingParamChain(),
		validate.IsString("title", msgTitleString),
		validate.MaxLen("title", 100, msgTitleRange),
		validate.IsBool("isDone", msgIsDoneBool),
		validate.Absent("blocks", msgBlocksForbidden),
	)
}

func (s *Server) handleGetWritings(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	userID := t.Params["userId"]
	state := t.Query.Get("state")
	respond(s, w, s.writings.GetByUserIDAndState(r.Context(), userID, state), http.StatusOK)
}

func (s *Server) handleCreateWriting(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	respond(s, w, s.writings.Create(r.Context(), t.Params["userId"]), http.StatusCreated)
}

func (s *Server) handleRemoveWriting(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	respond(s, w, s.writings.Remove(r.Context(), t.Params["userId"], t.Params["writingId"]), http.StatusOK)
}

func (s *Server) handleGetWriting(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	respond(s, w, s.writings.Get(r.Context(), t.Params["writingId"]), http.StatusOK)
}

func (s *Server) handleUpdateWriting(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	var update UpdateWriting
	if err := json.Unmarshal(t.RawBody, &update); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: msgInvalidJSON})
		return
	}
	update.Title = strings.TrimSpace(update.Title)

	respond(s, w, s.writings.Update(r.Context(), t.Params["writingId"], update), http.StatusOK)
}
