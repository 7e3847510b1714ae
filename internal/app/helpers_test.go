package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/prep-maker/backend/internal/auth"
	"github.com/prep-maker/backend/internal/result"
	"github.com/prep-maker/backend/internal/store"
)

type testEnv struct {
	server   *Server
	handler  http.Handler
	tokens   *auth.Tokens
	users    *store.MemoryUsers
	writings *store.MemoryWritings
	blocks   *store.MemoryBlocks
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := store.NewMemoryUsers()
	writings := store.NewMemoryWritings()
	blocks := store.NewMemoryBlocks()
	tokens := auth.NewTokens("test-secret", time.Hour)

	server := NewServer(ServerDeps{
		Auth:        NewAuthService(users, tokens, bcrypt.MinCost),
		Writings:    NewWritingService(writings, users, blocks),
		Blocks:      NewBlockService(blocks, writings),
		Users:       users,
		WritingRepo: writings,
		BlockRepo:   blocks,
		Ping:        func(context.Context) error { return nil },
		CORSOrigin:  "*",
		Logger:      zerolog.Nop(),
	})

	return &testEnv{
		server:   server,
		handler:  server.Handler(),
		tokens:   tokens,
		users:    users,
		writings: writings,
		blocks:   blocks,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeJSON[map[string]string](t, rr)["message"]
}

func (e *testEnv) seedUser(t *testing.T) store.User {
	t.Helper()

	hash, err := auth.HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	user, err := e.users.Create(context.Background(), store.User{
		ID:           uuid.NewString(),
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		Name:         "writer",
		PasswordHash: hash,
		Writings:     []string{},
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) seedWriting(t *testing.T, userID string) WritingResponse {
	t.Helper()

	res := e.server.writings.Create(context.Background(), userID)
	require.Equal(t, result.StateSuccess, res.State())
	return res.Data()
}

func (e *testEnv) seedBlock(t *testing.T, writingID string) BlockResponse {
	t.Helper()

	res := e.server.blocks.Create(context.Background(), writingID, BlockInput{
		Type: "P",
		Paragraphs: []store.Paragraph{
			{Type: "P", Content: "point"},
		},
	})
	require.Equal(t, result.StateSuccess, res.State())
	return res.Data()
}
