package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/prep-maker/backend/internal/result"
	"github.com/prep-maker/backend/internal/store"
)

type BlockService struct {
	blocks   store.BlockStore
	writings store.WritingStore
}

func NewBlockService(blocks store.BlockStore, writings store.WritingStore) *BlockService {
	return &BlockService{blocks: blocks, writings: writings}
}

// Create stores a new block and appends its id to the writing's block
// list.
func (s *BlockService) Create(ctx context.Context, writingID string, input BlockInput) result.Result[BlockResponse] {
	block, err := s.blocks.Create(ctx, store.Block{
		ID:         uuid.NewString(),
		Type:       input.Type,
		Paragraphs: input.Paragraphs,
	})
	if err != nil {
		return result.Error[BlockResponse](err)
	}

	if err := s.writings.AddBlock(ctx, writingID, block.ID); err != nil {
		return result.Error[BlockResponse](err)
	}

	responses := blockResponses([]store.Block{block})
	return result.OK(responses[0])
}

// Update replaces the block's content, keeping its id and position in the
// writing.
func (s *BlockService) Update(ctx context.Context, blockID string, input BlockInput) result.Result[BlockResponse] {
	block, err := s.blocks.Replace(ctx, blockID, store.Block{
		Type:       input.Type,
		Paragraphs: input.Paragraphs,
	})
	if errors.Is(err, store.ErrNotFound) {
		return result.Fail[BlockResponse](msgNotFoundBlock, http.StatusNotFound)
	}
	if err != nil {
		return result.Error[BlockResponse](err)
	}

	responses := blockResponses([]store.Block{block})
	return result.OK(responses[0])
}

// Remove deletes the block and pulls its id from the writing's block
// list.
func (s *BlockService) Remove(ctx context.Context, writingID, blockID string) result.Result[struct{}] {
	if err := s.blocks.DeleteByIDs(ctx, []string{blockID}); err != nil {
		return result.Error[struct{}](err)
	}
	if err := s.writings.RemoveBlock(ctx, writingID, blockID); err != nil {
		return result.Error[struct{}](err)
	}
	return result.OK(struct{}{})
}
