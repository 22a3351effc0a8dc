package memory

import (
	"context"
	"sync"

	"github.com/hucklog/ultimate-stats/internal/domain/connection"
)

type connKey struct {
	throwerID  string
	receiverID string
	gameID     string
}

type ConnectionRepository struct {
	mu      sync.RWMutex
	records map[connKey]connection.Record
}

func NewConnectionRepository() *ConnectionRepository {
	return &ConnectionRepository{records: make(map[connKey]connection.Record)}
}

func (r *ConnectionRepository) Find(_ context.Context, throwerID, receiverID, gameID string) (connection.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[connKey{throwerID: throwerID, receiverID: receiverID, gameID: gameID}]
	return rec, ok, nil
}

func (r *ConnectionRepository) ListByGame(_ context.Context, gameID string) ([]connection.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]connection.Record, 0)
	for key, rec := range r.records {
		if key.gameID == gameID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *ConnectionRepository) ListByThrower(_ context.Context, throwerID string) ([]connection.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]connection.Record, 0)
	for key, rec := range r.records {
		if key.throwerID == throwerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *ConnectionRepository) ListByParticipant(_ context.Context, playerID string, gameIDs []string) ([]connection.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}

	out := make([]connection.Record, 0)
	for key, rec := range r.records {
		if key.throwerID != playerID && key.receiverID != playerID {
			continue
		}
		if _, ok := wanted[key.gameID]; !ok {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *ConnectionRepository) ApplyDelta(_ context.Context, delta connection.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := connKey{throwerID: delta.ThrowerID, receiverID: delta.ReceiverID, gameID: delta.GameID}
	existing, ok := r.records[key]
	if !ok {
		r.records[key] = delta
		return nil
	}

	r.records[key] = connection.Merge(existing, delta)
	return nil
}

func (r *ConnectionRepository) Rekey(_ context.Context, rec connection.Record, throwerID, receiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := connKey{throwerID: rec.ThrowerID, receiverID: rec.ReceiverID, gameID: rec.GameID}
	stored, ok := r.records[key]
	if !ok {
		return nil
	}

	delete(r.records, key)
	stored.ThrowerID = throwerID
	stored.ReceiverID = receiverID
	r.records[connKey{throwerID: throwerID, receiverID: receiverID, gameID: stored.GameID}] = stored
	return nil
}

func (r *ConnectionRepository) Delete(_ context.Context, throwerID, receiverID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, connKey{throwerID: throwerID, receiverID: receiverID, gameID: gameID})
	return nil
}
