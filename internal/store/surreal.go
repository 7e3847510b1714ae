package store

import (
	"context"
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

const (
	userTable    = "user"
	writingTable = "writing"
	blockTable   = "block"
)

// Options carries the connection settings for Open.
type Options struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Open establishes the process-wide SurrealDB connection. The returned
// handle is injected into the repositories and closed at shutdown by the
// caller.
func Open(ctx context.Context, opts Options) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to surrealdb: %w", err)
	}
	if _, err := db.SignIn(ctx, surrealdb.Auth{
		Username: opts.Username,
		Password: opts.Password,
	}); err != nil {
		return nil, fmt.Errorf("sign in to surrealdb: %w", err)
	}
	if err := db.Use(ctx, opts.Namespace, opts.Database); err != nil {
		return nil, fmt.Errorf("select namespace: %w", err)
	}
	return db, nil
}

// Ping verifies store connectivity for the readiness probe.
func Ping(ctx context.Context, db *surrealdb.DB) error {
	_, err := surrealdb.Query[any](ctx, db, "RETURN 1", nil)
	return err
}

// Record representations. Links between documents are stored as record
// ids and mapped to plain string ids at this boundary.

type userRecord struct {
	ID           *models.RecordID  `json:"id,omitempty"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	PasswordHash string            `json:"password"`
	Writings     []models.RecordID `json:"writings"`
}

type writingRecord struct {
	ID     *models.RecordID  `json:"id,omitempty"`
	IsDone bool              `json:"isDone"`
	Author *models.RecordID  `json:"author"`
	Title  string            `json:"title"`
	Blocks []models.RecordID `json:"blocks"`
}

type blockRecord struct {
	ID         *models.RecordID `json:"id,omitempty"`
	Type       string           `json:"type"`
	Paragraphs []Paragraph      `json:"paragraphs"`
}

func recordIDString(rid *models.RecordID) string {
	if rid == nil {
		return ""
	}
	return fmt.Sprint(rid.ID)
}

func recordIDs(table string, ids []string) []models.RecordID {
	rids := make([]models.RecordID, 0, len(ids))
	for _, id := range ids {
		rids = append(rids, models.NewRecordID(table, id))
	}
	return rids
}

func stringIDs(rids []models.RecordID) []string {
	ids := make([]string, 0, len(rids))
	for _, rid := range rids {
		ids = append(ids, fmt.Sprint(rid.ID))
	}
	return ids
}

func (r *userRecord) toUser() User {
	return User{
		ID:           recordIDString(r.ID),
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		Writings:     stringIDs(r.Writings),
	}
}

func (r *writingRecord) toWriting() Writing {
	return Writing{
		ID:     recordIDString(r.ID),
		IsDone: r.IsDone,
		Author: recordIDString(r.Author),
		Title:  r.Title,
		Blocks: stringIDs(r.Blocks),
	}
}

func (r *blockRecord) toBlock() Block {
	return Block{
		ID:         recordIDString(r.ID),
		Type:       r.Type,
		Paragraphs: r.Paragraphs,
	}
}

// firstRow unwraps the first statement result of a query response.
func firstRow[T any](res *[]surrealdb.QueryResult[[]T]) (T, bool) {
	var zero T
	if res == nil || len(*res) == 0 || len((*res)[0].Result) == 0 {
		return zero, false
	}
	return (*res)[0].Result[0], true
}

func allRows[T any](res *[]surrealdb.QueryResult[[]T]) []T {
	if res == nil || len(*res) == 0 {
		return nil
	}
	return (*res)[0].Result
}

// SurrealUsers is the SurrealDB-backed UserStore.
type SurrealUsers struct {
	db *surrealdb.DB
}

func NewSurrealUsers(db *surrealdb.DB) *SurrealUsers {
	return &SurrealUsers{db: db}
}

func (s *SurrealUsers) FindByID(ctx context.Context, id string) (User, error) {
	rec, err := surrealdb.Select[userRecord](ctx, s.db, models.NewRecordID(userTable, id))
	if err != nil {
		return User{}, fmt.Errorf("select user: %w", err)
	}
	if rec == nil || rec.ID == nil {
		return User{}, ErrNotFound
	}
	return rec.toUser(), nil
}

func (s *SurrealUsers) FindByEmail(ctx context.Context, email string) (User, error) {
	res, err := surrealdb.Query[[]userRecord](ctx, s.db,
		"SELECT * FROM type::table($table) WHERE email = $email LIMIT 1",
		map[string]any{"table": userTable, "email": email},
	)
	if err != nil {
		return User{}, fmt.Errorf("select user by email: %w", err)
	}
	rec, ok := firstRow(res)
	if !ok {
		return User{}, ErrNotFound
	}
	return rec.toUser(), nil
}

func (s *SurrealUsers) Create(ctx context.Context, user User) (User, error) {
	rec, err := surrealdb.Create[userRecord](ctx, s.db, models.NewRecordID(userTable, user.ID), map[string]any{
		"email":    user.Email,
		"name":     user.Name,
		"password": user.PasswordHash,
		"writings": recordIDs(writingTable, user.Writings),
	})
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return rec.toUser(), nil
}

func (s *SurrealUsers) AddWriting(ctx context.Context, userID, writingID string) error {
	_, err := surrealdb.Query[[]userRecord](ctx, s.db,
		"UPDATE $user SET writings += $writing",
		map[string]any{
			"user":    models.NewRecordID(userTable, userID),
			"writing": models.NewRecordID(writingTable, writingID),
		},
	)
	if err != nil {
		return fmt.Errorf("link writing to user: %w", err)
	}
	return nil
}

func (s *SurrealUsers) RemoveWriting(ctx context.Context, userID, writingID string) error {
	_, err := surrealdb.Query[[]userRecord](ctx, s.db,
		"UPDATE $user SET writings -= $writing",
		map[string]any{
			"user":    models.NewRecordID(userTable, userID),
			"writing": models.NewRecordID(writingTable, writingID),
		},
	)
	if err != nil {
		return fmt.Errorf("unlink writing from user: %w", err)
	}
	return nil
}

// SurrealWritings is the SurrealDB-backed WritingStore.
type SurrealWritings struct {
	db *surrealdb.DB
}

func NewSurrealWritings(db *surrealdb.DB) *SurrealWritings {
	return &SurrealWritings{db: db}
}

func (s *SurrealWritings) FindByID(ctx context.Context, id string) (Writing, error) {
	rec, err := surrealdb.Select[writingRecord](ctx, s.db, models.NewRecordID(writingTable, id))
	if err != nil {
		return Writing{}, fmt.Errorf("select writing: %w", err)
	}
	if rec == nil || rec.ID == nil {
		return Writing{}, ErrNotFound
	}
	return rec.toWriting(), nil
}

func (s *SurrealWritings) FindByAuthor(ctx context.Context, userID string, filter StateFilter) ([]Writing, error) {
	query := "SELECT * FROM type::table($table) WHERE author = $author"
	vars := map[string]any{
		"table":  writingTable,
		"author": models.NewRecordID(userTable, userID),
	}
	switch filter {
	case FilterDone:
		query += " AND isDone = true"
	case FilterEditing:
		query += " AND isDone = false"
	}

	res, err := surrealdb.Query[[]writingRecord](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("select writings by author: %w", err)
	}

	writings := make([]Writing, 0)
	for _, rec := range allRows(res) {
		writings = append(writings, rec.toWriting())
	}
	return writings, nil
}

func (s *SurrealWritings) Create(ctx context.Context, writing Writing) (Writing, error) {
	author := models.NewRecordID(userTable, writing.Author)
	rec, err := surrealdb.Create[writingRecord](ctx, s.db, models.NewRecordID(writingTable, writing.ID), map[string]any{
		"isDone": writing.IsDone,
		"author": author,
		"title":  writing.Title,
		"blocks": recordIDs(blockTable, writing.Blocks),
	})
	if err != nil {
		return Writing{}, fmt.Errorf("create writing: %w", err)
	}
	return rec.toWriting(), nil
}

func (s *SurrealWritings) Update(ctx context.Context, id string, update WritingUpdate) (Writing, error) {
	res, err := surrealdb.Query[[]writingRecord](ctx, s.db,
		"UPDATE $writing SET title = $title, isDone = $isDone",
		map[string]any{
			"writing": models.NewRecordID(writingTable, id),
			"title":   update.Title,
			"isDone":  update.IsDone,
		},
	)
	if err != nil {
		return Writing{}, fmt.Errorf("update writing: %w", err)
	}
	rec, ok := firstRow(res)
	if !ok {
		return Writing{}, ErrNotFound
	}
	return rec.toWriting(), nil
}

func (s *SurrealWritings) SetBlocks(ctx context.Context, id string, blockIDs []string) error {
	_, err := surrealdb.Query[[]writingRecord](ctx, s.db,
		"UPDATE $writing SET blocks = $blocks",
		map[string]any{
			"writing": models.NewRecordID(writingTable, id),
			"blocks":  recordIDs(blockTable, blockIDs),
		},
	)
	if err != nil {
		return fmt.Errorf("set writing blocks: %w", err)
	}
	return nil
}

func (s *SurrealWritings) AddBlock(ctx context.Context, id, blockID string) error {
	_, err := surrealdb.Query[[]writingRecord](ctx, s.db,
		"UPDATE $writing SET blocks += $block",
		map[string]any{
			"writing": models.NewRecordID(writingTable, id),
			"block":   models.NewRecordID(blockTable, blockID),
		},
	)
	if err != nil {
		return fmt.Errorf("append block to writing: %w", err)
	}
	return nil
}

func (s *SurrealWritings) RemoveBlock(ctx context.Context, id, blockID string) error {
	_, err := surrealdb.Query[[]writingRecord](ctx, s.db,
		"UPDATE $writing SET blocks -= $block",
		map[string]any{
			"writing": models.NewRecordID(writingTable, id),
			"block":   models.NewRecordID(blockTable, blockID),
		},
	)
	if err != nil {
		return fmt.Errorf("pull block from writing: %w", err)
	}
	return nil
}

func (s *SurrealWritings) Delete(ctx context.Context, id string) (Writing, error) {
	res, err := surrealdb.Query[[]writingRecord](ctx, s.db,
		"DELETE $writing RETURN BEFORE",
		map[string]any{"writing": models.NewRecordID(writingTable, id)},
	)
	if err != nil {
		return Writing{}, fmt.Errorf("delete writing: %w", err)
	}
	rec, ok := firstRow(res)
	if !ok {
		return Writing{}, ErrNotFound
	}
	return rec.toWriting(), nil
}

// SurrealBlocks is the SurrealDB-backed BlockStore.
type SurrealBlocks struct {
	db *surrealdb.DB
}

func NewSurrealBlocks(db *surrealdb.DB) *SurrealBlocks {
	return &SurrealBlocks{db: db}
}

func (s *SurrealBlocks) FindByID(ctx context.Context, id string) (Block, error) {
	rec, err := surrealdb.Select[blockRecord](ctx, s.db, models.NewRecordID(blockTable, id))
	if err != nil {
		return Block{}, fmt.Errorf("select block: %w", err)
	}
	if rec == nil || rec.ID == nil {
		return Block{}, ErrNotFound
	}
	return rec.toBlock(), nil
}

func (s *SurrealBlocks) FindByIDs(ctx context.Context, ids []string) ([]Block, error) {
	if len(ids) == 0 {
		return []Block{}, nil
	}
	res, err := surrealdb.Query[[]blockRecord](ctx, s.db,
		"SELECT * FROM $blocks",
		map[string]any{"blocks": recordIDs(blockTable, ids)},
	)
	if err != nil {
		return nil, fmt.Errorf("select blocks: %w", err)
	}

	byID := make(map[string]Block, len(ids))
	for _, rec := range allRows(res) {
		block := rec.toBlock()
		byID[block.ID] = block
	}

	// The writing's id list is the source of block order.
	blocks := make([]Block, 0, len(ids))
	for _, id := range ids {
		if block, ok := byID[id]; ok {
			blocks = append(blocks, block)
		}
	}
	return blocks, nil
}

func (s *SurrealBlocks) Create(ctx context.Context, block Block) (Block, error) {
	rec, err := surrealdb.Create[blockRecord](ctx, s.db, models.NewRecordID(blockTable, block.ID), map[string]any{
		"type":       block.Type,
		"paragraphs": block.Paragraphs,
	})
	if err != nil {
		return Block{}, fmt.Errorf("create block: %w", err)
	}
	return rec.toBlock(), nil
}

func (s *SurrealBlocks) Replace(ctx context.Context, id string, block Block) (Block, error) {
	rec, err := surrealdb.Update[blockRecord](ctx, s.db, models.NewRecordID(blockTable, id), map[string]any{
		"type":       block.Type,
		"paragraphs": block.Paragraphs,
	})
	if err != nil {
		return Block{}, fmt.Errorf("replace block: %w", err)
	}
	if rec == nil || rec.ID == nil {
		return Block{}, ErrNotFound
	}
	return rec.toBlock(), nil
}

func (s *SurrealBlocks) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := surrealdb.Query[[]blockRecord](ctx, s.db,
		"DELETE $blocks",
		map[string]any{"blocks": recordIDs(blockTable, ids)},
	)
	if err != nil {
		return fmt.Errorf("delete blocks: %w", err)
	}
	return nil
}
