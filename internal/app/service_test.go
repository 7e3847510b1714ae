package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prep-maker/backend/internal/result"
	"github.com/prep-maker/backend/internal/store"
)

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account := Account{Email: "dup@example.com", Name: "first", Password: "secret1"}

	first := env.server.auth.Signup(ctx, account)
	require.Equal(t, result.StateSuccess, first.State())

	second := env.server.auth.Signup(ctx, Account{Email: "dup@example.com", Name: "second", Password: "secret2"})
	assert.Equal(t, result.StateFail, second.State())
	assert.Equal(t, "이미 존재하는 이메일입니다.", second.Message())
	assert.Equal(t, http.StatusBadRequest, second.Status())

	kept, err := env.users.FindByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, "first", kept.Name)
}

func TestSigninUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	res := env.server.auth.Signin(context.Background(), Credentials{Email: "nobody@example.com", Password: "whatever"})
	assert.Equal(t, result.StateFail, res.State())
	assert.Equal(t, http.StatusNotFound, res.Status())
	assert.Equal(t, msgNotFoundUser, res.Message())
}

func TestSigninWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)

	res := env.server.auth.Signin(ctx, Credentials{Email: user.Email, Password: "not-the-password"})
	assert.Equal(t, result.StateFail, res.State())
	assert.Equal(t, http.StatusBadRequest, res.Status())
	assert.Equal(t, msgInvalidLogin, res.Message())
}

func TestSigninIssuesUsableToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)

	res := env.server.auth.Signin(ctx, Credentials{Email: user.Email, Password: "secret1"})
	require.Equal(t, result.StateSuccess, res.State())

	claims, err := env.tokens.Parse(res.Data().Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
}

func TestCreateWritingStartsBlank(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)

	res := env.server.writings.Create(ctx, user.ID)
	require.Equal(t, result.StateSuccess, res.State())

	writing := res.Data()
	assert.Equal(t, "Untitled", writing.Title)
	assert.False(t, writing.IsDone)
	assert.Empty(t, writing.Blocks)
	assert.Equal(t, user.ID, writing.Author)

	owner, err := env.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Contains(t, owner.Writings, writing.ID)
}

func TestGetWritingsFiltersByState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)

	first := env.seedWriting(t, user.ID)
	env.seedWriting(t, user.ID)
	env.seedWriting(t, user.ID)

	updated := env.server.writings.Update(ctx, first.ID, UpdateWriting{Title: "done one", IsDone: true})
	require.Equal(t, result.StateSuccess, updated.State())

	all := env.server.writings.GetByUserIDAndState(ctx, user.ID, "")
	done := env.server.writings.GetByUserIDAndState(ctx, user.ID, "done")
	editing := env.server.writings.GetByUserIDAndState(ctx, user.ID, "editing")
	require.Equal(t, result.StateSuccess, all.State())
	require.Equal(t, result.StateSuccess, done.State())
	require.Equal(t, result.StateSuccess, editing.State())

	assert.Len(t, all.Data(), 3)
	require.Len(t, done.Data(), 1)
	assert.Len(t, editing.Data(), 2)
	assert.Equal(t, first.ID, done.Data()[0].ID)

	for _, w := range done.Data() {
		assert.True(t, w.IsDone)
	}
	for _, w := range editing.Data() {
		assert.False(t, w.IsDone)
	}
}

func TestRemoveWritingCascadesToBlocks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	writing := env.seedWriting(t, user.ID)
	b1 := env.seedBlock(t, writing.ID)
	b2 := env.seedBlock(t, writing.ID)

	res := env.server.writings.Remove(ctx, user.ID, writing.ID)
	require.Equal(t, result.StateSuccess, res.State())

	deleted := res.Data()
	require.Len(t, deleted, 2)
	assert.Equal(t, b1.ID, deleted[0].ID)
	assert.Equal(t, b2.ID, deleted[1].ID)

	_, err := env.writings.FindByID(ctx, writing.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = env.blocks.FindByID(ctx, b1.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = env.blocks.FindByID(ctx, b2.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	owner, err := env.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotContains(t, owner.Writings, writing.ID)
}

func TestUpdateWritingNotFound(t *testing.T) {
	env := newTestEnv(t)

	res := env.server.writings.Update(context.Background(), "11111111-1111-1111-1111-111111111111", UpdateWriting{Title: "x"})
	assert.Equal(t, result.StateFail, res.State())
	assert.Equal(t, http.StatusNotFound, res.Status())
	assert.Equal(t, msgNotFoundWriting, res.Message())
}

func TestUpdateBlocksReplacesWholeSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	writing := env.seedWriting(t, user.ID)
	old := env.seedBlock(t, writing.ID)

	inputs := []BlockInput{
		{Type: "PR", Paragraphs: []store.Paragraph{{Type: "P", Content: "point"}, {Type: "R", Content: "reason"}}},
		{Type: "E", Paragraphs: []store.Paragraph{{Type: "E", Content: "example"}}},
	}
	res := env.server.writings.UpdateBlocks(ctx, writing.ID, inputs)
	require.Equal(t, result.StateSuccess, res.State())

	created := res.Data()
	require.Len(t, created, 2)
	assert.Equal(t, "PR", created[0].Type)
	assert.Equal(t, "E", created[1].Type)

	stored, err := env.writings.FindByID(ctx, writing.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{created[0].ID, created[1].ID}, stored.Blocks)

	_, err = env.blocks.FindByID(ctx, old.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBlockUpdateKeepsIDAndPosition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	writing := env.seedWriting(t, user.ID)
	first := env.seedBlock(t, writing.ID)
	second := env.seedBlock(t, writing.ID)

	res := env.server.blocks.Update(ctx, first.ID, BlockInput{
		Type:       "RE",
		Paragraphs: []store.Paragraph{{Type: "R", Content: "reason"}, {Type: "E", Content: "example"}},
	})
	require.Equal(t, result.StateSuccess, res.State())
	assert.Equal(t, first.ID, res.Data().ID)
	assert.Equal(t, "RE", res.Data().Type)

	stored, err := env.writings.FindByID(ctx, writing.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, stored.Blocks)
}

func TestBlockUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)

	res := env.server.blocks.Update(context.Background(), "22222222-2222-2222-2222-222222222222", BlockInput{Type: "P"})
	assert.Equal(t, result.StateFail, res.State())
	assert.Equal(t, http.StatusNotFound, res.Status())
	assert.Equal(t, msgNotFoundBlock, res.Message())
}

func TestBlockRemoveUnlinksFromWriting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	writing := env.seedWriting(t, user.ID)
	block := env.seedBlock(t, writing.ID)
	kept := env.seedBlock(t, writing.ID)

	res := env.server.blocks.Remove(ctx, writing.ID, block.ID)
	require.Equal(t, result.StateSuccess, res.State())

	_, err := env.blocks.FindByID(ctx, block.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	stored, err := env.writings.FindByID(ctx, writing.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{kept.ID}, stored.Blocks)
}
