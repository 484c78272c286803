package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"entgo.io/ent/dialect"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Dialect() != "sqlite3" {
		t.Errorf("dialect = %q, want sqlite3", s.Dialect())
	}
}

func TestDriverFor(t *testing.T) {
	tests := []struct {
		dsn        string
		wantDriver string
	}{
		{"postgres://u:p@localhost/wellnest", "postgres"},
		{"postgresql://localhost/wellnest?sslmode=disable", "postgres"},
		{"/tmp/wellnest.db", "sqlite"},
		{"file::memory:?cache=shared", "sqlite"},
	}
	for _, tt := range tests {
		got, _ := driverFor(tt.dsn)
		if got != tt.wantDriver {
			t.Errorf("driverFor(%q) = %q, want %q", tt.dsn, got, tt.wantDriver)
		}
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{tableSequence, tableLLMEvents, tableKV, tableChat, tableCategories, tableExercises} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestMigrate_FreshDatabaseIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	s := &Store{db: db, dialect: dialect.SQLite}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := s.migrate(ctx); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}

	// Defaults fill the columns an insert leaves out.
	if _, err := db.Exec(`INSERT INTO `+tableLLMEvents+
		` (id, created_at, provider, model, purpose, success) VALUES (1, 0, 'mock', 'mock', 'diagnosis', 1)`); err != nil {
		t.Fatalf("insert event: %v", err)
	}
	var in int
	var errMsg string
	if err := db.QueryRow(`SELECT input_tokens, error_message FROM `+tableLLMEvents+` WHERE id = 1`).Scan(&in, &errMsg); err != nil {
		t.Fatalf("select event: %v", err)
	}
	if in != 0 || errMsg != "" {
		t.Errorf("defaults = (%d, %q), want (0, \"\")", in, errMsg)
	}

	if _, err := db.Exec(`INSERT INTO ` + tableCategories + ` (id, name) VALUES (1, 'beginner')`); err != nil {
		t.Fatalf("insert category: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO ` + tableCategories + ` (id, name) VALUES (2, 'beginner')`); err == nil {
		t.Error("expected duplicate category name to be rejected")
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if i == 0 && seq != 1 {
			t.Errorf("first seq = %d, want 1", seq)
		}
		if seq <= prev {
			t.Errorf("seq[%d] = %d, not greater than %d", i, seq, prev)
		}
		prev = seq
	}
}

func TestReopenKeepsSequence(t *testing.T) {
	path := t.TempDir() + "/wellnest.db"
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	first, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	second, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next after reopen: %v", err)
	}
	if second != first+1 {
		t.Errorf("seq after reopen = %d, want %d", second, first+1)
	}
}

func TestLLMEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	inputs := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "symptom-questions", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true, RequestBody: "[user]\nheadache", ResponseBody: `{"questions":[]}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "diagnosis", InputTokens: 200, OutputTokens: 60, LatencyMs: 500, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "diagnosis", LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, in := range inputs {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	// Newest first.
	if events[0].ErrorMessage != "rate limited" || events[0].Success {
		t.Errorf("newest event = %+v", events[0])
	}
	if events[2].RequestBody != "[user]\nheadache" {
		t.Errorf("request body = %q", events[2].RequestBody)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "symptom-questions"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Purpose != "symptom-questions" {
		t.Fatalf("limited = %+v", limited)
	}

	got, err := repo.GetLLMEvent(ctx, limited[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ResponseBody != `{"questions":[]}` {
		t.Fatalf("get = %+v", got)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", got.Timestamp)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMEvents_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, in := range []LLMRequestEventData{
		{Model: "gemini-2.5-flash", Purpose: "diagnosis", InputTokens: 100, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Model: "gemini-2.5-flash", Purpose: "diagnosis", InputTokens: 50, OutputTokens: 20, LatencyMs: 300, Success: true},
		{Model: "gpt-4o-mini", Purpose: "assistant", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	d := byPurpose[0]
	if d.Purpose != "diagnosis" || d.Calls != 2 || d.InputTokens != 150 || d.OutputTokens != 30 || d.AvgLatencyMs != 200 {
		t.Errorf("diagnosis usage = %+v", d)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.5-flash" || byModel[0].Calls != 2 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestKV(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "userProfile"); err != nil || ok {
		t.Fatalf("get empty: ok=%v err=%v", ok, err)
	}

	if err := kv.Put(ctx, "userProfile", `{"a":1}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, "userProfile", `{"a":2}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := kv.Get(ctx, "userProfile")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `{"a":2}` {
		t.Errorf("value = %q, want overwritten value", v)
	}

	if err := kv.Delete(ctx, "userProfile"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "userProfile"); ok {
		t.Error("expected key to be gone after delete")
	}
}

func TestChat_RecentOldestFirst(t *testing.T) {
	s := openTestStore(t)
	chat := s.ChatRepo()
	ctx := context.Background()

	for i, body := range []string{"hi", "hello, how are you feeling?", "tired", "rest a little"} {
		sender := "user"
		if i%2 == 1 {
			sender = "assistant"
		}
		msg, err := chat.Append(ctx, ChatMessage{Conversation: "c1", Sender: sender, Body: body})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if msg.ID == 0 || msg.CreatedAt.IsZero() {
			t.Fatalf("append did not fill id/time: %+v", msg)
		}
	}
	if _, err := chat.Append(ctx, ChatMessage{Conversation: "other", Sender: "user", Body: "x"}); err != nil {
		t.Fatalf("append other: %v", err)
	}

	msgs, err := chat.Recent(ctx, "c1", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Body != "tired" || msgs[1].Body != "rest a little" {
		t.Errorf("recent = %q, %q", msgs[0].Body, msgs[1].Body)
	}
}

func TestExercises_SeedOnce(t *testing.T) {
	s := openTestStore(t)
	repo := s.ExerciseRepo()
	ctx := context.Background()

	seed := []CategorySeed{
		{
			Category: ExerciseCategory{Name: "beginner", Description: "Start here"},
			Exercises: []Exercise{
				{Title: "Walk", DurationMinutes: 20, Benefits: []string{"cardio"}},
				{Title: "Stretch", DurationMinutes: 10},
			},
		},
		{
			Category:  ExerciseCategory{Name: "advanced"},
			Exercises: []Exercise{{Title: "Intervals", DurationMinutes: 30, Benefits: []string{"endurance", "speed"}}},
		},
	}

	seeded, err := repo.SeedDefaults(ctx, seed)
	if err != nil || !seeded {
		t.Fatalf("first seed: seeded=%v err=%v", seeded, err)
	}
	seeded, err = repo.SeedDefaults(ctx, seed)
	if err != nil || seeded {
		t.Fatalf("second seed: seeded=%v err=%v", seeded, err)
	}

	cats, err := repo.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 2 || cats[0].Name != "beginner" {
		t.Fatalf("categories = %+v", cats)
	}

	beginner, err := repo.CategoryByName(ctx, "beginner")
	if err != nil || beginner == nil {
		t.Fatalf("category by name: %v %v", beginner, err)
	}
	exs, err := repo.ExercisesByCategory(ctx, beginner.ID)
	if err != nil {
		t.Fatalf("exercises: %v", err)
	}
	if len(exs) != 2 || exs[0].Title != "Walk" || exs[1].Title != "Stretch" {
		t.Fatalf("exercises = %+v", exs)
	}
	if len(exs[1].Benefits) != 0 {
		t.Errorf("nil benefits should round-trip as empty, got %v", exs[1].Benefits)
	}

	missing, err := repo.CategoryByName(ctx, "expert")
	if err != nil || missing != nil {
		t.Fatalf("missing category: %v %v", missing, err)
	}
}
