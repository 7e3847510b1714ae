package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/prep-maker/backend/internal/result"
	"github.com/prep-maker/backend/internal/store"
)

const defaultTitle = "Untitled"

// WritingResponse is a writing with its blocks populated from the block
// repository, in the order of the writing's block-id list.
type WritingResponse struct {
	ID     string          `json:"id"`
	IsDone bool            `json:"isDone"`
	Author string          `json:"author"`
	Title  string          `json:"title"`
	Blocks []BlockResponse `json:"blocks"`
}

type BlockResponse struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Paragraphs []store.Paragraph `json:"paragraphs"`
}

// UpdateWriting is the title/isDone update body. The blocks key is
// rejected by validation before it could ever reach this type.
type UpdateWriting struct {
	Title  string `json:"title"`
	IsDone bool   `json:"isDone"`
}

// BlockInput is a block payload without an id, as supplied by clients.
type BlockInput struct {
	Type       string            `json:"type"`
	Paragraphs []store.Paragraph `json:"paragraphs"`
}

type WritingService struct {
	writings store.WritingStore
	users    store.UserStore
	blocks   store.BlockStore
}

func NewWritingService(writings store.WritingStore, users store.UserStore, blocks store.BlockStore) *WritingService {
	return &WritingService{writings: writings, users: users, blocks: blocks}
}

func blockResponses(blocks []store.Block) []BlockResponse {
	responses := make([]BlockResponse, 0, len(blocks))
	for _, block := range blocks {
		paragraphs := block.Paragraphs
		if paragraphs == nil {
			paragraphs = []store.Paragraph{}
		}
		responses = append(responses, BlockResponse{
			ID:         block.ID,
			Type:       block.Type,
			Paragraphs: paragraphs,
		})
	}
	return responses
}

func (s *WritingService) populate(ctx context.Context, writing store.Writing) (WritingResponse, error) {
	blocks, err := s.blocks.FindByIDs(ctx, writing.Blocks)
	if err != nil {
		return WritingResponse{}, err
	}
	return WritingResponse{
		ID:     writing.ID,
		IsDone: writing.IsDone,
		Author: writing.Author,
		Title:  writing.Title,
		Blocks: blockResponses(blocks),
	}, nil
}

// GetByUserIDAndState lists a user's writings. state is "", "done" or
// "editing"; the empty state selects everything.
func (s *WritingService) GetByUserIDAndState(ctx context.Context, userID, state string) result.Result[[]WritingResponse] {
	var filter store.StateFilter
	switch state {
	case "done":
		filter = store.FilterDone
	case "editing":
		filter = store.FilterEditing
	default:
		filter = store.FilterAll
	}

	writings, err := s.writings.FindByAuthor(ctx, userID, filter)
	if err != nil {
		return result.Error[[]WritingResponse](err)
	}

	responses := make([]WritingResponse, 0, len(writings))
	for _, writing := range writings {
		response, err := s.populate(ctx, writing)
		if err != nil {
			return result.Error[[]WritingResponse](err)
		}
		responses = append(responses, response)
	}
	return result.OK(responses)
}

// Get returns a single writing with populated blocks.
func (s *WritingService) Get(ctx context.Context, writingID string) result.Result[WritingResponse] {
	writing, err := s.writings.FindByID(ctx, writingID)
	if errors.Is(err, store.ErrNotFound) {
		return result.Fail[WritingResponse](msgNotFoundWriting, http.StatusNotFound)
	}
	if err != nil {
		return result.Error[WritingResponse](err)
	}
	return result.Of(s.populate(ctx, writing))
}

// Create makes a blank writing for the user and links it to the user's
// writing list.
func (s *WritingService) Create(ctx context.Context, userID string) result.Result[WritingResponse] {
	writing, err := s.writings.Create(ctx, store.Writing{
		ID:     uuid.NewString(),
		IsDone: false,
		Author: userID,
		Title:  defaultTitle,
		Blocks: []string{},
	})
	if err != nil {
		return result.Error[WritingResponse](err)
	}

	if err := s.users.AddWriting(ctx, userID, writing.ID); err != nil {
		return result.Error[WritingResponse](err)
	}

	return result.Of(s.populate(ctx, writing))
}

// Remove unlinks the writing from its user, deletes it, and cascades the
// deletion to its blocks, returning the deleted blocks. The steps are not
// transactional: a crash in between can leave orphaned blocks or a
// dangling user reference.
func (s *WritingService) Remove(ctx context.Context, userID, writingID string) result.Result[[]BlockResponse] {
	if err := s.users.RemoveWriting(ctx, userID, writingID); err != nil {
		return result.Error[[]BlockResponse](err)
	}

	writing, err := s.writings.Delete(ctx, writingID)
	if errors.Is(err, store.ErrNotFound) {
		return result.Fail[[]BlockResponse](msgNotFoundWriting, http.StatusNotFound)
	}
	if err != nil {
		return result.Error[[]BlockResponse](err)
	}

	blocks, err := s.blocks.FindByIDs(ctx, writing.Blocks)
	if err != nil {
		return result.Error[[]BlockResponse](err)
	}
	if err := s.blocks.DeleteByIDs(ctx, writing.Blocks); err != nil {
		return result.Error[[]BlockResponse](err)
	}

	return result.OK(blockResponses(blocks))
}

// Update applies a title/isDone change and returns the updated writing.
func (s *WritingService) Update(ctx context.Context, writingID string, update UpdateWriting) result.Result[WritingResponse] {
	writing, err := s.writings.Update(ctx, writingID, store.WritingUpdate{
		Title:  update.Title,
		IsDone: update.IsDone,
	})
	if errors.Is(err, store.ErrNotFound) {
		return result.Fail[WritingResponse](msgNotFoundWriting, http.StatusNotFound)
	}
	if err != nil {
		return result.Error[WritingResponse](err)
	}
	return result.Of(s.populate(ctx, writing))
}

// UpdateBlocks replaces the writing's whole block set: the new blocks are
// written first, then the writing is pointed at them, and only then are
// the old blocks deleted.
func (s *WritingService) UpdateBlocks(ctx context.Context, writingID string, inputs []BlockInput) result.Result[[]BlockResponse] {
	writing, err := s.writings.FindByID(ctx, writingID)
	if errors.Is(err, store.ErrNotFound) {
		return result.Fail[[]BlockResponse](msgNotFoundWriting, http.StatusNotFound)
	}
	if err != nil {
		return result.Error[[]BlockResponse](err)
	}
	oldIDs := writing.Blocks

	created := make([]store.Block, 0, len(inputs))
	newIDs := make([]string, 0, len(inputs))
	for _, input := range inputs {
		block, err := s.blocks.Create(ctx, store.Block{
			ID:         uuid.NewString(),
			Type:       input.Type,
			Paragraphs: input.Paragraphs,
		})
		if err != nil {
			return result.Error[[]BlockResponse](err)
		}
		created = append(created, block)
		newIDs = append(newIDs, block.ID)
	}

	if err := s.writings.SetBlocks(ctx, writingID, newIDs); err != nil {
		return result.Error[[]BlockResponse](err)
	}
	if err := s.blocks.DeleteByIDs(ctx, oldIDs); err != nil {
		return result.Error[[]BlockResponse](err)
	}

	return result.OK(blockResponses(created))
}
