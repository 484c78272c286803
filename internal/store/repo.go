package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when non-empty
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded LLM request as read back from the store.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls sharing a purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls per model, for cost estimation.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// EventReader reads recorded LLM events back for inspection.
type EventReader interface {
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// KVRepo stores small opaque documents by name.
type KVRepo interface {
	// Get returns the value for name. ok is false when nothing is stored.
	Get(ctx context.Context, name string) (value string, ok bool, err error)
	Put(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

// ChatMessage is one line of an assistant conversation.
type ChatMessage struct {
	ID           int64
	Conversation string
	Sender       string
	Body         string
	CreatedAt    time.Time
}

// ChatRepo persists assistant conversations.
type ChatRepo interface {
	Append(ctx context.Context, msg ChatMessage) (ChatMessage, error)
	// Recent returns up to limit of the latest messages in the
	// conversation, oldest first.
	Recent(ctx context.Context, conversation string, limit int) ([]ChatMessage, error)
}

// ExerciseCategory groups exercises by difficulty.
type ExerciseCategory struct {
	ID          int
	Name        string
	Description string
}

// Exercise is a single catalog entry.
type Exercise struct {
	ID              int
	CategoryID      int
	Title           string
	Description     string
	DurationMinutes int
	Benefits        []string
	CreatedAt       time.Time
}

// CategorySeed is a category with its exercises, used to populate an
// empty catalog.
type CategorySeed struct {
	Category  ExerciseCategory
	Exercises []Exercise
}

// ExerciseRepo reads the exercise catalog.
type ExerciseRepo interface {
	Categories(ctx context.Context) ([]ExerciseCategory, error)
	// CategoryByName returns nil when no category has that name.
	CategoryByName(ctx context.Context, name string) (*ExerciseCategory, error)
	ExercisesByCategory(ctx context.Context, categoryID int) ([]Exercise, error)
	// SeedDefaults inserts seed only when the catalog is empty and
	// reports whether it did.
	SeedDefaults(ctx context.Context, seed []CategorySeed) (bool, error)
}
