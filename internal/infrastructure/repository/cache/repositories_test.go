package cache

import (
	"context"
	"testing"
	"time"

	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/infrastructure/repository/memory"
	basecache "github.com/hucklog/ultimate-stats/internal/platform/cache"
)

type countingPlayerStatsRepo struct {
	playerstats.Repository
	findTotalsCalls int
}

func (r *countingPlayerStatsRepo) FindTotals(ctx context.Context, playerID string) (playerstats.TotalRecord, bool, error) {
	r.findTotalsCalls++
	return r.Repository.FindTotals(ctx, playerID)
}

func TestPlayerStatsRepository_CachesTotals(t *testing.T) {
	counting := &countingPlayerStatsRepo{Repository: memory.NewPlayerStatsRepository()}
	repo := NewPlayerStatsRepository(counting, basecache.NewStore(time.Minute))

	delta := playerstats.TotalRecord{
		PlayerID:   "alice",
		PlayerName: "Alice",
		StatLine:   playerstats.StatLine{Goals: 2, Touches: 5},
	}
	if err := repo.ApplyTotalsDelta(t.Context(), delta); err != nil {
		t.Fatalf("ApplyTotalsDelta: %v", err)
	}

	for i := 0; i < 3; i++ {
		rec, found, err := repo.FindTotals(t.Context(), "alice")
		if err != nil || !found {
			t.Fatalf("FindTotals: found=%v err=%v", found, err)
		}
		if rec.Goals != 2 {
			t.Fatalf("expected 2 goals, got %d", rec.Goals)
		}
	}
	if counting.findTotalsCalls != 1 {
		t.Fatalf("expected 1 backing lookup, got %d", counting.findTotalsCalls)
	}
}

func TestPlayerStatsRepository_WriteInvalidates(t *testing.T) {
	counting := &countingPlayerStatsRepo{Repository: memory.NewPlayerStatsRepository()}
	repo := NewPlayerStatsRepository(counting, basecache.NewStore(time.Minute))

	delta := playerstats.TotalRecord{
		PlayerID:   "alice",
		PlayerName: "Alice",
		StatLine:   playerstats.StatLine{Goals: 1},
	}
	if err := repo.ApplyTotalsDelta(t.Context(), delta); err != nil {
		t.Fatalf("ApplyTotalsDelta: %v", err)
	}
	if _, _, err := repo.FindTotals(t.Context(), "alice"); err != nil {
		t.Fatalf("FindTotals: %v", err)
	}

	if err := repo.ApplyTotalsDelta(t.Context(), delta); err != nil {
		t.Fatalf("second ApplyTotalsDelta: %v", err)
	}
	rec, found, err := repo.FindTotals(t.Context(), "alice")
	if err != nil || !found {
		t.Fatalf("FindTotals after write: found=%v err=%v", found, err)
	}
	if rec.Goals != 2 {
		t.Fatalf("expected invalidated read to see 2 goals, got %d", rec.Goals)
	}
	if counting.findTotalsCalls != 2 {
		t.Fatalf("expected 2 backing lookups, got %d", counting.findTotalsCalls)
	}
}

func TestPlayerStatsRepository_CachesMissAsNotFound(t *testing.T) {
	counting := &countingPlayerStatsRepo{Repository: memory.NewPlayerStatsRepository()}
	repo := NewPlayerStatsRepository(counting, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		_, found, err := repo.FindTotals(t.Context(), "ghost")
		if err != nil {
			t.Fatalf("FindTotals: %v", err)
		}
		if found {
			t.Fatal("expected no totals for unknown player")
		}
	}
	if counting.findTotalsCalls != 1 {
		t.Fatalf("expected miss to be cached, got %d lookups", counting.findTotalsCalls)
	}
}
