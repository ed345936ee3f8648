package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/microposts/backend/internal/social"
)

type edgeKey struct {
	ownerID  uint
	targetID uint
}

// MemoryRelationStore keeps relation edges in process memory. It backs the
// "memory" relation backend and the tests of everything above the store.
type MemoryRelationStore struct {
	mu    sync.RWMutex
	edges map[social.Relation]map[edgeKey]time.Time
}

func NewMemoryRelationStore() *MemoryRelationStore {
	return &MemoryRelationStore{edges: make(map[social.Relation]map[edgeKey]time.Time)}
}

func (m *MemoryRelationStore) Exists(_ context.Context, rel social.Relation, ownerID, targetID uint) (bool, error) {
	if _, err := lookupJoinTable(rel); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.edges[rel][edgeKey{ownerID, targetID}]
	return ok, nil
}

func (m *MemoryRelationStore) Add(_ context.Context, rel social.Relation, ownerID, targetID uint) error {
	if _, err := lookupJoinTable(rel); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.edges[rel]
	if !ok {
		set = make(map[edgeKey]time.Time)
		m.edges[rel] = set
	}
	key := edgeKey{ownerID, targetID}
	if _, dup := set[key]; dup {
		return social.ErrDuplicateEdge
	}
	set[key] = time.Now()
	return nil
}

func (m *MemoryRelationStore) Remove(_ context.Context, rel social.Relation, ownerID, targetID uint) error {
	if _, err := lookupJoinTable(rel); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := edgeKey{ownerID, targetID}
	if _, ok := m.edges[rel][key]; !ok {
		return social.ErrEdgeNotFound
	}
	delete(m.edges[rel], key)
	return nil
}

func (m *MemoryRelationStore) ListTargets(_ context.Context, rel social.Relation, ownerID uint) ([]uint, error) {
	return m.collect(rel, func(k edgeKey) (uint, bool) { return k.targetID, k.ownerID == ownerID })
}

func (m *MemoryRelationStore) ListOwners(_ context.Context, rel social.Relation, targetID uint) ([]uint, error) {
	return m.collect(rel, func(k edgeKey) (uint, bool) { return k.ownerID, k.targetID == targetID })
}

func (m *MemoryRelationStore) CountTargets(ctx context.Context, rel social.Relation, ownerID uint) (int64, error) {
	ids, err := m.ListTargets(ctx, rel, ownerID)
	return int64(len(ids)), err
}

func (m *MemoryRelationStore) CountOwners(ctx context.Context, rel social.Relation, targetID uint) (int64, error) {
	ids, err := m.ListOwners(ctx, rel, targetID)
	return int64(len(ids)), err
}

// collect returns the sorted ids picked from every matching edge of rel.
func (m *MemoryRelationStore) collect(rel social.Relation, pick func(edgeKey) (uint, bool)) ([]uint, error) {
	if _, err := lookupJoinTable(rel); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := []uint{}
	for k := range m.edges[rel] {
		if id, ok := pick(k); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

var _ social.RelationStore = (*MemoryRelationStore)(nil)
