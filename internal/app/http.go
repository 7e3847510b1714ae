package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/prep-maker/backend/internal/result"
	"github.com/prep-maker/backend/internal/store"
	"github.com/prep-maker/backend/internal/validate"
)

const maxBodyBytes = 1 << 20

type ServerDeps struct {
	Auth        *AuthService
	Writings    *WritingService
	Blocks      *BlockService
	Users       store.UserStore
	WritingRepo store.WritingStore
	BlockRepo   store.BlockStore
	Ping        func(context.Context) error
	CORSOrigin  string
	Logger      zerolog.Logger
}

type Server struct {
	auth        *AuthService
	writings    *WritingService
	blocks      *BlockService
	users       store.UserStore
	writingRepo store.WritingStore
	blockRepo   store.BlockStore
	ping        func(context.Context) error
	cors        string
	log         zerolog.Logger
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		auth:        deps.Auth,
		writings:    deps.Writings,
		blocks:      deps.Blocks,
		users:       deps.Users,
		writingRepo: deps.WritingRepo,
		blockRepo:   deps.BlockRepo,
		ping:        deps.Ping,
		cors:        deps.CORSOrigin,
		log:         deps.Logger,
	}
}

// Handler wires every route to its validation chain and controller.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc("/auth/signup", s.route(s.signupChain(), s.handleSignup)).Methods(http.MethodPost)
	r.HandleFunc("/auth/signin", s.route(s.signinChain(), s.handleSignin)).Methods(http.MethodPost)

	r.HandleFunc("/users/{userId}/writings", s.route(s.getWritingsChain(), s.handleGetWritings)).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/writings", s.route(s.userParamChain(), s.handleCreateWriting)).Methods(http.MethodPost)
	r.HandleFunc("/users/{userId}/writings/{writingId}", s.route(s.removeWritingChain(), s.handleRemoveWriting)).Methods(http.MethodDelete)

	r.HandleFunc("/writings/{writingId}", s.route(s.writingParamChain(), s.handleGetWriting)).Methods(http.MethodGet)
	r.HandleFunc("/writings/{writingId}", s.route(s.updateWritingChain(), s.handleUpdateWriting)).Methods(http.MethodPut)
	r.HandleFunc("/writings/{writingId}/blocks", s.route(s.createBlockChain(), s.handleCreateBlock)).Methods(http.MethodPost)
	r.HandleFunc("/writings/{writingId}/blocks", s.route(s.updateBlocksChain(), s.handleUpdateBlocks)).Methods(http.MethodPut)
	r.HandleFunc("/writings/{writingId}/blocks/{blockId}", s.route(s.updateBlockChain(), s.handleUpdateBlock)).Methods(http.MethodPut)
	r.HandleFunc("/writings/{writingId}/blocks/{blockId}", s.route(s.removeBlockChain(), s.handleRemoveBlock)).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Message: "Not Found"})
	})

	return s.withRecovery(s.withCORS(s.withLogging(r)))
}

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respond maps a service result onto the HTTP response: success uses the
// route's success status, fail carries its own status and message, and
// error is logged and reduced to a generic 500 body.
func respond[T any](s *Server, w http.ResponseWriter, res result.Result[T], successStatus int) {
	switch res.State() {
	case result.StateSuccess:
		if successStatus == http.StatusNoContent {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, successStatus, res.Data())
	case result.StateFail:
		writeJSON(w, res.Status(), errorBody{Message: res.Message()})
	default:
		s.log.Error().Err(res.Err()).Msg("unexpected service error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: msgServerError})
	}
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, t *validate.Target)

// route decodes the request once, runs the validation chain, and only
// invokes the controller when every check passed.
func (s *Server) route(chain validate.Chain, handle handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			s.log.Error().Err(err).Msg("read request body")
			writeJSON(w, http.StatusInternalServerError, errorBody{Message: msgServerError})
			return
		}

		target, err := validate.NewTarget(body, mux.Vars(r), r.URL.Query())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Message: msgInvalidJSON})
			return
		}

		if failure := chain.Run(r.Context(), target); failure != nil {
			if failure.Err != nil || failure.Status >= http.StatusInternalServerError {
				s.log.Error().Err(failure.Err).Str("path", r.URL.Path).Msg("existence check failed")
				writeJSON(w, http.StatusInternalServerError, errorBody{Message: msgServerError})
				return
			}
			writeJSON(w, failure.Status, errorBody{Message: failure.Message})
			return
		}

		handle(w, r, target)
	}
}

// Existence lookups used by the validation chains.

func (s *Server) userExists(ctx context.Context, id string) (bool, error) {
	return exists(s.users.FindByID(ctx, id))
}

func (s *Server) writingExists(ctx context.Context, id string) (bool, error) {
	return exists(s.writingRepo.FindByID(ctx, id))
}

func (s *Server) blockExists(ctx context.Context, id string) (bool, error) {
	return exists(s.blockRepo.FindByID(ctx, id))
}

func exists[T any](_ T, err error) (bool, error) {
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cors)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Cache-Control", "no-store")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
				writeJSON(w, http.StatusInternalServerError, errorBody{Message: msgServerError})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
