package app

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/prep-maker/backend/internal/store"
	"github.com/prep-maker/backend/internal/validate"
)

func (s *Server) blockParamChain() validate.Chain {
	return validate.Chain{
		validate.UUIDParam("blockId", msgInvalidBlockID),
		validate.ExistingParam("blockId", s.blockExists, msgNotFoundBlock),
	}
}

func blockBodyChecks() validate.Chain {
	return validate.Chain{
		validate.Required("type", msgBlockTypeRequired),
		validate.OneOf("type", store.BlockTypes, msgBlockType),
		validate.IsArray("paragraphs", msgParagraphsArray),
	}
}

func blockElementCheck(fields map[string]any) *validate.Failure {
	t, ok := fields["type"].(string)
	if !ok || strings.TrimSpace(t) == "" {
		return &validate.Failure{Message: msgBlockTypeRequired, Status: http.StatusBadRequest}
	}
	if !slices.Contains(store.BlockTypes, strings.TrimSpace(t)) {
		return &validate.Failure{Message: msgBlockType, Status: http.StatusBadRequest}
	}
	if _, ok := fields["paragraphs"].([]any); !ok {
		return &validate.Failure{Message: msgParagraphsArray, Status: http.StatusBadRequest}
	}
	return nil
}

func (s *Server) createBlockChain() validate.Chain {
	return append(s.writingParamChain(), blockBodyChecks()...)
}

func (s *Server) updateBlocksChain() validate.Chain {
	return append(s.writingParamChain(),
		validate.ArrayBody(msgBlockListRequired),
		validate.EachObject(msgBlockListRequired, blockElementCheck),
	)
}

func (s *Server) updateBlockChain() validate.Chain {
	chain := append(s.writingParamChain(), s.blockParamChain()...)
	return append(chain, blockBodyChecks()...)
}

func (s *Server) removeBlockChain() validate.Chain {
	return append(s.writingParamChain(), s.blockParamChain()...)
}

func (s *Server) handleCreateBlock(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	var input BlockInput
	if err := json.Unmarshal(t.RawBody, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: msgInvalidJSON})
		return
	}
	respond(s, w, s.blocks.Create(r.Context(), t.Params["writingId"], input), http.StatusCreated)
}

func (s *Server) handleUpdateBlocks(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	var inputs []BlockInput
	if err := json.Unmarshal(t.RawBody, &inputs); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: msgInvalidJSON})
		return
	}
	respond(s, w, s.writings.UpdateBlocks(r.Context(), t.Params["writingId"], inputs), http.StatusOK)
}

func (s *Server) handleUpdateBlock(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	var input BlockInput
	if err := json.Unmarshal(t.RawBody, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: msgInvalidJSON})
		return
	}
	respond(s, w, s.blocks.Update(r.Context(), t.Params["blockId"], input), http.StatusOK)
}

func (s *Server) handleRemoveBlock(w http.ResponseWriter, r *http.Request, t *validate.Target) {
	respond(s, w, s.blocks.Remove(r.Context(), t.Params["writingId"], t.Params["blockId"]), http.StatusNoContent)
}
