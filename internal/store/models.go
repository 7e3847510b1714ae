package store

// User owns writings by back-reference id. The password hash is never
// serialized into responses.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Writings     []string `json:"writings"`
}

// Writing is a user-owned document composed of ordered blocks, referenced
// by id. IsDone distinguishes finished writings from ones still being
// edited.
type Writing struct {
	ID     string   `json:"id"`
	IsDone bool     `json:"isDone"`
	Author string   `json:"author"`
	Title  string   `json:"title"`
	Blocks []string `json:"blocks"`
}

// WritingUpdate is a title/isDone update. Block lists change through
// SetBlocks, AddBlock and RemoveBlock only.
type WritingUpdate struct {
	Title  string
	IsDone bool
}

// Paragraph is the smallest content unit. Type is one of P, R and E.
type Paragraph struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Block is a typed paragraph group owned by exactly one writing at a time.
type Block struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// BlockTypes is the closed set of valid block types.
var BlockTypes = []string{"P", "R", "E", "PR", "RE", "EP", "PRE", "REP", "PREP"}

// StateFilter selects writings by completion state.
type StateFilter int

const (
	FilterAll StateFilter = iota
	FilterDone
	FilterEditing
)
