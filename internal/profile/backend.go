package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/wellnest/internal/store"
)

// Backend persists the whole profile as one record.
type Backend interface {
	// Load returns the stored profile, or an empty one if none exists.
	Load(ctx context.Context) (Profile, error)
	Save(ctx context.Context, p Profile) error
}

// MemoryBackend keeps the profile in process memory.
type MemoryBackend struct {
	mu      sync.Mutex
	profile Profile
	// SaveErr, when set, is returned by every Save.
	SaveErr error
}

func (m *MemoryBackend) Load(context.Context) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile.Clone(), nil
}

func (m *MemoryBackend) Save(_ context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.profile = p.Clone()
	return nil
}

// RecordName is the key the profile is stored under.
const RecordName = "userProfile"

// KVBackend stores the profile as a JSON document in a key-value repo.
type KVBackend struct {
	kv store.KVRepo
}

// NewKVBackend returns a backend over kv.
func NewKVBackend(kv store.KVRepo) *KVBackend {
	return &KVBackend{kv: kv}
}

func (b *KVBackend) Load(ctx context.Context) (Profile, error) {
	raw, ok, err := b.kv.Get(ctx, RecordName)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return Profile{}, nil
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *KVBackend) Save(ctx context.Context, p Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := b.kv.Put(ctx, RecordName, string(data)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
