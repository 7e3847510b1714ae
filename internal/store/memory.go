package store

import (
	"context"
	"slices"
	"sync"
)

// In-memory repositories used as test doubles and for local development
// without a running SurrealDB. Each store copies records on the way in
// and out so callers never share backing slices.

type MemoryUsers struct {
	mu    sync.Mutex
	users map[string]User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]User)}
}

func copyUser(u User) User {
	u.Writings = slices.Clone(u.Writings)
	return u
}

func (s *MemoryUsers) FindByID(_ context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return copyUser(user), nil
}

func (s *MemoryUsers) FindByEmail(_ context.Context, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemoryUsers) Create(_ context.Context, user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.Writings == nil {
		user.Writings = []string{}
	}
	s.users[user.ID] = copyUser(user)
	return copyUser(user), nil
}

func (s *MemoryUsers) AddWriting(_ context.Context, userID, writingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.Writings = append(slices.Clone(user.Writings), writingID)
	s.users[userID] = user
	return nil
}

func (s *MemoryUsers) RemoveWriting(_ context.Context, userID, writingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	kept := make([]string, 0, len(user.Writings))
	for _, id := range user.Writings {
		if id != writingID {
			kept = append(kept, id)
		}
	}
	user.Writings = kept
	s.users[userID] = user
	return nil
}

type MemoryWritings struct {
	mu       sync.Mutex
	writings map[string]Writing
	order    []string
}

func NewMemoryWritings() *MemoryWritings {
	return &MemoryWritings{writings: make(map[string]Writing)}
}

func copyWriting(w Writing) Writing {
	w.Blocks = slices.Clone(w.Blocks)
	return w
}

func (s *MemoryWritings) FindByID(_ context.Context, id string) (Writing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writing, ok := s.writings[id]
	if !ok {
		return Writing{}, ErrNotFound
	}
	return copyWriting(writing), nil
}

func (s *MemoryWritings) FindByAuthor(_ context.Context, userID string, filter StateFilter) ([]Writing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := make([]Writing, 0)
	for _, id := range s.order {
		writing, ok := s.writings[id]
		if !ok || writing.Author != userID {
			continue
		}
		if filter == FilterDone && !writing.IsDone {
			continue
		}
		if filter == FilterEditing && writing.IsDone {
			continue
		}
		found = append(found, copyWriting(writing))
	}
	return found, nil
}

func (s *MemoryWritings) Create(_ context.Context, writing Writing) (Writing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if writing.Blocks == nil {
		writing.Blocks = []string{}
	}
	s.writings[writing.ID] = copyWriting(writing)
	s.order = append(s.order, writing.ID)
	return copyWriting(writing), nil
}

func (s *MemoryWritings) Update(_ context.Context, id string, update WritingUpdate) (Writing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writing, ok := s.writings[id]
	if !ok {
		return Writing{}, ErrNotFound
	}
	writing.Title = update.Title
	writing.IsDone = update.IsDone
	s.writings[id] = writing
	return copyWriting(writing), nil
}

func (s *MemoryWritings) SetBlocks(_ context.Context, id string, blockIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	writing, ok := s.writings[id]
	if !ok {
		return ErrNotFound
	}
	writing.Blocks = slices.Clone(blockIDs)
	s.writings[id] = writing
	return nil
}

func (s *MemoryWritings) AddBlock(_ context.Context, id, blockID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	writing, ok := s.writings[id]
	if !ok {
		return ErrNotFound
	}
	writing.Blocks = append(slices.Clone(writing.Blocks), blockID)
	s.writings[id] = writing
	return nil
}

func (s *MemoryWritings) RemoveBlock(_ context.Context, id, blockID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	writing, ok := s.writings[id]
	if !ok {
		return ErrNotFound
	}
	kept := make([]string, 0, len(writing.Blocks))
	for _, existing := range writing.Blocks {
		if existing != blockID {
			kept = append(kept, existing)
		}
	}
	writing.Blocks = kept
	s.writings[id] = writing
	return nil
}

func (s *MemoryWritings) Delete(_ context.Context, id string) (Writing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writing, ok := s.writings[id]
	if !ok {
		return Writing{}, ErrNotFound
	}
	delete(s.writings, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = slices.Delete(slices.Clone(s.order), i, i+1)
			break
		}
	}
	return copyWriting(writing), nil
}

type MemoryBlocks struct {
	mu     sync.Mutex
	blocks map[string]Block
}

func NewMemoryBlocks() *MemoryBlocks {
	return &MemoryBlocks{blocks: make(map[string]Block)}
}

func copyBlock(b Block) Block {
	b.Paragraphs = slices.Clone(b.Paragraphs)
	return b
}

func (s *MemoryBlocks) FindByID(_ context.Context, id string) (Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	block, ok := s.blocks[id]
	if !ok {
		return Block{}, ErrNotFound
	}
	return copyBlock(block), nil
}

func (s *MemoryBlocks) FindByIDs(_ context.Context, ids []string) ([]Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := make([]Block, 0, len(ids))
	for _, id := range ids {
		if block, ok := s.blocks[id]; ok {
			found = append(found, copyBlock(block))
		}
	}
	return found, nil
}

func (s *MemoryBlocks) Create(_ context.Context, block Block) (Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if block.Paragraphs == nil {
		block.Paragraphs = []Paragraph{}
	}
	s.blocks[block.ID] = copyBlock(block)
	return copyBlock(block), nil
}

func (s *MemoryBlocks) Replace(_ context.Context, id string, block Block) (Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blocks[id]; !ok {
		return Block{}, ErrNotFound
	}
	block.ID = id
	if block.Paragraphs == nil {
		block.Paragraphs = []Paragraph{}
	}
	s.blocks[id] = copyBlock(block)
	return copyBlock(block), nil
}

func (s *MemoryBlocks) DeleteByIDs(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.blocks, id)
	}
	return nil
}
