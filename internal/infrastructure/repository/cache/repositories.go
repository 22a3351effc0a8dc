package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/hucklog/ultimate-stats/internal/domain/connection"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/domain/teamstats"
	basecache "github.com/hucklog/ultimate-stats/internal/platform/cache"
)

// PlayerStatsRepository caches read paths over a player stats
// repository. Every write invalidates the whole player-stats keyspace;
// deltas land mid-game too often for per-key invalidation to pay off.
type PlayerStatsRepository struct {
	next  playerstats.Repository
	cache *basecache.Store
}

func NewPlayerStatsRepository(next playerstats.Repository, cache *basecache.Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, cache: cache}
}

func (r *PlayerStatsRepository) FindGameRecord(ctx context.Context, playerID, gameID, teamID string) (playerstats.GameRecord, bool, error) {
	key := "player-stats:game:" + playerID + ":" + gameID + ":" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindGameRecord(ctx, playerID, gameID, teamID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerGameRecord{value: item, exists: exists}, nil
	})
	if err != nil {
		return playerstats.GameRecord{}, false, err
	}

	cached, _ := v.(cachedPlayerGameRecord)
	return cached.value, cached.exists, nil
}

func (r *PlayerStatsRepository) ListGameRecordsByGame(ctx context.Context, gameID string) ([]playerstats.GameRecord, error) {
	key := "player-stats:game-list:" + gameID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListGameRecordsByGame(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return append([]playerstats.GameRecord(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]playerstats.GameRecord)
	return append([]playerstats.GameRecord(nil), items...), nil
}

func (r *PlayerStatsRepository) ListGameRecordsByPlayer(ctx context.Context, playerID string) ([]playerstats.GameRecord, error) {
	key := "player-stats:player-list:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListGameRecordsByPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return append([]playerstats.GameRecord(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]playerstats.GameRecord)
	return append([]playerstats.GameRecord(nil), items...), nil
}

func (r *PlayerStatsRepository) FindTotals(ctx context.Context, playerID string) (playerstats.TotalRecord, bool, error) {
	key := "player-stats:totals:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindTotals(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerTotals{value: item, exists: exists}, nil
	})
	if err != nil {
		return playerstats.TotalRecord{}, false, err
	}

	cached, _ := v.(cachedPlayerTotals)
	return cached.value, cached.exists, nil
}

func (r *PlayerStatsRepository) ApplyGameDelta(ctx context.Context, delta playerstats.GameRecord) error {
	if err := r.next.ApplyGameDelta(ctx, delta); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player-stats:")
	return nil
}

func (r *PlayerStatsRepository) RekeyGameRecord(ctx context.Context, playerID, gameID, teamID string, to playerstats.Identity) error {
	if err := r.next.RekeyGameRecord(ctx, playerID, gameID, teamID, to); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player-stats:")
	return nil
}

func (r *PlayerStatsRepository) DeleteGameRecord(ctx context.Context, playerID, gameID, teamID string) error {
	if err := r.next.DeleteGameRecord(ctx, playerID, gameID, teamID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player-stats:")
	return nil
}

func (r *PlayerStatsRepository) ApplyTotalsDelta(ctx context.Context, delta playerstats.TotalRecord) error {
	if err := r.next.ApplyTotalsDelta(ctx, delta); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player-stats:")
	return nil
}

func (r *PlayerStatsRepository) RekeyTotals(ctx context.Context, playerID string, to playerstats.Identity) error {
	if err := r.next.RekeyTotals(ctx, playerID, to); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player-stats:")
	return nil
}

func (r *PlayerStatsRepository) DeleteTotals(ctx context.Context, playerID string) error {
	if err := r.next.DeleteTotals(ctx, playerID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player-stats:")
	return nil
}

type cachedPlayerGameRecord struct {
	value  playerstats.GameRecord
	exists bool
}

type cachedPlayerTotals struct {
	value  playerstats.TotalRecord
	exists bool
}

type TeamStatsRepository struct {
	next  teamstats.Repository
	cache *basecache.Store
}

func NewTeamStatsRepository(next teamstats.Repository, cache *basecache.Store) *TeamStatsRepository {
	return &TeamStatsRepository{next: next, cache: cache}
}

func (r *TeamStatsRepository) FindGameRecord(ctx context.Context, teamID, gameID string) (teamstats.GameRecord, bool, error) {
	key := "team-stats:game:" + teamID + ":" + gameID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindGameRecord(ctx, teamID, gameID)
		if err != nil {
			return nil, err
		}
		return cachedTeamGameRecord{value: item, exists: exists}, nil
	})
	if err != nil {
		return teamstats.GameRecord{}, false, err
	}

	cached, _ := v.(cachedTeamGameRecord)
	return cached.value, cached.exists, nil
}

func (r *TeamStatsRepository) ListGameRecordsByGame(ctx context.Context, gameID string) ([]teamstats.GameRecord, error) {
	key := "team-stats:game-list:" + gameID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListGameRecordsByGame(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return append([]teamstats.GameRecord(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]teamstats.GameRecord)
	return append([]teamstats.GameRecord(nil), items...), nil
}

func (r *TeamStatsRepository) FindTotals(ctx context.Context, teamID string) (teamstats.TotalRecord, bool, error) {
	key := "team-stats:totals:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindTotals(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamTotals{value: item, exists: exists}, nil
	})
	if err != nil {
		return teamstats.TotalRecord{}, false, err
	}

	cached, _ := v.(cachedTeamTotals)
	return cached.value, cached.exists, nil
}

func (r *TeamStatsRepository) ApplyGameDelta(ctx context.Context, delta teamstats.GameRecord) error {
	if err := r.next.ApplyGameDelta(ctx, delta); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "team-stats:")
	return nil
}

func (r *TeamStatsRepository) ApplyTotalsDelta(ctx context.Context, delta teamstats.TotalRecord) error {
	if err := r.next.ApplyTotalsDelta(ctx, delta); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "team-stats:")
	return nil
}

type cachedTeamGameRecord struct {
	value  teamstats.GameRecord
	exists bool
}

type cachedTeamTotals struct {
	value  teamstats.TotalRecord
	exists bool
}

type ConnectionRepository struct {
	next  connection.Repository
	cache *basecache.Store
}

func NewConnectionRepository(next connection.Repository, cache *basecache.Store) *ConnectionRepository {
	return &ConnectionRepository{next: next, cache: cache}
}

func (r *ConnectionRepository) Find(ctx context.Context, throwerID, receiverID, gameID string) (connection.Record, bool, error) {
	key := "connection:pair:" + throwerID + ":" + receiverID + ":" + gameID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Find(ctx, throwerID, receiverID, gameID)
		if err != nil {
			return nil, err
		}
		return cachedConnection{value: item, exists: exists}, nil
	})
	if err != nil {
		return connection.Record{}, false, err
	}

	cached, _ := v.(cachedConnection)
	return cached.value, cached.exists, nil
}

func (r *ConnectionRepository) ListByGame(ctx context.Context, gameID string) ([]connection.Record, error) {
	key := "connection:game:" + gameID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGame(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return append([]connection.Record(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]connection.Record)
	return append([]connection.Record(nil), items...), nil
}

func (r *ConnectionRepository) ListByThrower(ctx context.Context, throwerID string) ([]connection.Record, error) {
	key := "connection:thrower:" + throwerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByThrower(ctx, throwerID)
		if err != nil {
			return nil, err
		}
		return append([]connection.Record(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]connection.Record)
	return append([]connection.Record(nil), items...), nil
}

func (r *ConnectionRepository) ListByParticipant(ctx context.Context, playerID string, gameIDs []string) ([]connection.Record, error) {
	ids := append([]string(nil), gameIDs...)
	sort.Strings(ids)
	key := "connection:participant:" + playerID + ":" + strings.Join(ids, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByParticipant(ctx, playerID, gameIDs)
		if err != nil {
			return nil, err
		}
		return append([]connection.Record(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]connection.Record)
	return append([]connection.Record(nil), items...), nil
}

func (r *ConnectionRepository) ApplyDelta(ctx context.Context, delta connection.Record) error {
	if err := r.next.ApplyDelta(ctx, delta); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "connection:")
	return nil
}

func (r *ConnectionRepository) Rekey(ctx context.Context, rec connection.Record, throwerID, receiverID string) error {
	if err := r.next.Rekey(ctx, rec, throwerID, receiverID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "connection:")
	return nil
}

func (r *ConnectionRepository) Delete(ctx context.Context, throwerID, receiverID, gameID string) error {
	if err := r.next.Delete(ctx, throwerID, receiverID, gameID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "connection:")
	return nil
}

type cachedConnection struct {
	value  connection.Record
	exists bool
}
