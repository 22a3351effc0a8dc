package usecase

import (
	"context"
	"fmt"

	"github.com/hucklog/ultimate-stats/internal/domain/connection"
	"github.com/hucklog/ultimate-stats/internal/domain/game"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/domain/team"
	"github.com/hucklog/ultimate-stats/internal/platform/logging"
)

// IdentityResolver fills in the display fields for a registered user.
// The user-directory client implements this; callers may pass a fully
// populated identity and skip the lookup.
type IdentityResolver interface {
	Resolve(ctx context.Context, playerID string) (playerstats.Identity, error)
}

// ReconciliationService folds a guest placeholder's statistical
// footprint into a registered player's identity across every store
// that mentions the guest: embedded game documents, team rosters,
// per-game and lifetime player records, and connection records.
type ReconciliationService struct {
	gameRepo   game.Repository
	teamRepo   team.Repository
	playerRepo playerstats.Repository
	connRepo   connection.Repository
	resolver   IdentityResolver
	logger     *logging.Logger
}

func NewReconciliationService(
	gameRepo game.Repository,
	teamRepo team.Repository,
	playerRepo playerstats.Repository,
	connRepo connection.Repository,
	resolver IdentityResolver,
	logger *logging.Logger,
) *ReconciliationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconciliationService{
		gameRepo:   gameRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		connRepo:   connRepo,
		resolver:   resolver,
		logger:     logger,
	}
}

// ReconcileGuestInput names the guest to absorb and the teams whose
// history may mention it. Player may be partially filled; missing
// display fields are resolved through the identity resolver.
type ReconcileGuestInput struct {
	GuestID string
	Player  playerstats.Identity
	TeamIDs []string
}

// ReconcileGuest rewrites every trace of the guest to the registered
// player. Each store is checked before merging, so a run interrupted
// midway can be retried: records already moved are simply not found
// under the guest key on the second pass.
func (s *ReconciliationService) ReconcileGuest(ctx context.Context, input ReconcileGuestInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.ReconcileGuest")
	defer span.End()

	if input.GuestID == "" || input.Player.ID == "" {
		return fmt.Errorf("%w: guest id and player id are required", ErrInvalidInput)
	}
	if input.GuestID == input.Player.ID {
		return fmt.Errorf("%w: guest and player ids must differ", ErrInvalidInput)
	}

	identity, err := s.resolveIdentity(ctx, input.Player)
	if err != nil {
		return err
	}

	games, err := s.gameRepo.ListByTeams(ctx, input.TeamIDs)
	if err != nil {
		return fmt.Errorf("list games for reconciliation: %w", err)
	}

	gameIDs := make([]string, 0, len(games))
	for _, g := range games {
		gameIDs = append(gameIDs, g.ID)
		if err := s.reconcileGame(ctx, g, input.GuestID, identity); err != nil {
			return err
		}
	}

	if err := s.reconcileRosters(ctx, input.TeamIDs, input.GuestID, identity); err != nil {
		return err
	}
	if err := s.reconcilePlayerRecords(ctx, games, input.GuestID, identity); err != nil {
		return err
	}
	if err := s.reconcileConnections(ctx, gameIDs, input.GuestID, identity); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "guest reconciled",
		"guest_id", input.GuestID,
		"player_id", identity.ID,
		"games", len(games),
	)
	return nil
}

func (s *ReconciliationService) resolveIdentity(ctx context.Context, player playerstats.Identity) (playerstats.Identity, error) {
	if player.Name != "" && player.Username != "" {
		return player, nil
	}
	if s.resolver == nil {
		return playerstats.Identity{}, fmt.Errorf("%w: player name and username are required", ErrInvalidInput)
	}
	resolved, err := s.resolver.Resolve(ctx, player.ID)
	if err != nil {
		return playerstats.Identity{}, fmt.Errorf("%w: resolve player %s: %v", ErrDependencyUnavailable, player.ID, err)
	}
	if player.Name == "" {
		player.Name = resolved.Name
	}
	if player.Username == "" {
		player.Username = resolved.Username
	}
	return player, nil
}

// reconcileGame rewrites one game's embedded point players, embedded
// connections, and leader slots. When both the guest and the player
// appear in the same point the guest's line folds into the player's.
func (s *ReconciliationService) reconcileGame(ctx context.Context, g *game.Game, guestID string, to playerstats.Identity) error {
	changed := false
	for pi := range g.Points {
		point := &g.Points[pi]
		if reconcilePointPlayers(point, guestID, to) {
			changed = true
		}
		if reconcilePointConnections(point, guestID, to.ID) {
			changed = true
		}
	}
	if g.Leaders.Rename(guestID, to) {
		changed = true
	}
	if !changed {
		return nil
	}
	if err := s.gameRepo.Save(ctx, g); err != nil {
		return fmt.Errorf("save reconciled game %s: %w", g.ID, err)
	}
	return nil
}

func reconcilePointPlayers(point *game.Point, guestID string, to playerstats.Identity) bool {
	guestIdx, targetIdx := -1, -1
	for i := range point.Players {
		switch point.Players[i].PlayerID {
		case guestID:
			guestIdx = i
		case to.ID:
			targetIdx = i
		}
	}
	if guestIdx < 0 {
		return false
	}
	if targetIdx >= 0 {
		point.Players[targetIdx].Stats = playerstats.Merge(point.Players[targetIdx].Stats, point.Players[guestIdx].Stats)
		point.Players = append(point.Players[:guestIdx], point.Players[guestIdx+1:]...)
		return true
	}
	point.Players[guestIdx].PlayerID = to.ID
	point.Players[guestIdx].Name = to.Name
	point.Players[guestIdx].Username = to.Username
	return true
}

func reconcilePointConnections(point *game.Point, guestID, toID string) bool {
	changed := false
	rewritten := point.Connections[:0]
	for _, rec := range point.Connections {
		if rec.ThrowerID == guestID {
			rec.ThrowerID = toID
			changed = true
		}
		if rec.ReceiverID == guestID {
			rec.ReceiverID = toID
			changed = true
		}
		if rec.ThrowerID == rec.ReceiverID {
			// A guest throwing to its own registered identity is a
			// bookkeeping artifact, not a real pair; drop it.
			changed = true
			continue
		}
		merged := false
		for i := range rewritten {
			if rewritten[i].Key() == rec.Key() {
				rewritten[i] = connection.Merge(rewritten[i], rec)
				merged = true
				changed = true
				break
			}
		}
		if !merged {
			rewritten = append(rewritten, rec)
		}
	}
	point.Connections = rewritten
	return changed
}

func (s *ReconciliationService) reconcileRosters(ctx context.Context, teamIDs []string, guestID string, to playerstats.Identity) error {
	teams, err := s.teamRepo.ListByIDs(ctx, teamIDs)
	if err != nil {
		return fmt.Errorf("list teams for reconciliation: %w", err)
	}
	for _, t := range teams {
		if !t.HasPlayer(guestID) {
			continue
		}
		if t.HasPlayer(to.ID) {
			t.RemovePlayer(guestID)
		} else {
			t.ReplacePlayer(guestID, to.ID)
		}
		if err := s.teamRepo.Save(ctx, t); err != nil {
			return fmt.Errorf("save reconciled team %s: %w", t.ID, err)
		}
	}
	return nil
}

// reconcilePlayerRecords moves the guest's per-game records and
// lifetime totals under the player's key. When the player already has
// a record for the same game the guest's line is folded in and the
// guest row deleted; otherwise the row is rekeyed in place.
func (s *ReconciliationService) reconcilePlayerRecords(ctx context.Context, games []*game.Game, guestID string, to playerstats.Identity) error {
	inScope := make(map[string]bool, len(games))
	for _, g := range games {
		inScope[g.ID] = true
	}

	guestRecords, err := s.playerRepo.ListGameRecordsByPlayer(ctx, guestID)
	if err != nil {
		return fmt.Errorf("list guest game records: %w", err)
	}

	var folded playerstats.StatLine
	foldedAny := false
	for _, rec := range guestRecords {
		if !inScope[rec.GameID] {
			continue
		}
		existing, found, err := s.playerRepo.FindGameRecord(ctx, to.ID, rec.GameID, rec.TeamID)
		if err != nil {
			return fmt.Errorf("find player game record: %w", err)
		}
		if found {
			delta := rec
			delta.PlayerID = existing.PlayerID
			delta.PlayerName = existing.PlayerName
			delta.Username = existing.Username
			if err := s.playerRepo.ApplyGameDelta(ctx, delta); err != nil {
				return fmt.Errorf("fold guest game record: %w", err)
			}
			if err := s.playerRepo.DeleteGameRecord(ctx, guestID, rec.GameID, rec.TeamID); err != nil {
				return fmt.Errorf("delete guest game record: %w", err)
			}
		} else {
			if err := s.playerRepo.RekeyGameRecord(ctx, guestID, rec.GameID, rec.TeamID, to); err != nil {
				return fmt.Errorf("rekey guest game record: %w", err)
			}
		}
		folded = playerstats.Merge(folded, rec.StatLine)
		foldedAny = true
	}
	if !foldedAny {
		return nil
	}

	guestTotals, guestHasTotals, err := s.playerRepo.FindTotals(ctx, guestID)
	if err != nil {
		return fmt.Errorf("find guest totals: %w", err)
	}
	if !guestHasTotals {
		return nil
	}
	_, playerHasTotals, err := s.playerRepo.FindTotals(ctx, to.ID)
	if err != nil {
		return fmt.Errorf("find player totals: %w", err)
	}
	if playerHasTotals {
		if err := s.playerRepo.ApplyTotalsDelta(ctx, playerstats.TotalRecord{
			PlayerID:   to.ID,
			PlayerName: to.Name,
			Username:   to.Username,
			StatLine:   guestTotals.StatLine,
		}); err != nil {
			return fmt.Errorf("fold guest totals: %w", err)
		}
		if err := s.playerRepo.DeleteTotals(ctx, guestID); err != nil {
			return fmt.Errorf("delete guest totals: %w", err)
		}
		return nil
	}
	if err := s.playerRepo.RekeyTotals(ctx, guestID, to); err != nil {
		return fmt.Errorf("rekey guest totals: %w", err)
	}
	return nil
}

// reconcileConnections covers both game-scoped rows and the lifetime
// rows kept under the empty game id.
func (s *ReconciliationService) reconcileConnections(ctx context.Context, gameIDs []string, guestID string, to playerstats.Identity) error {
	scope := append(append([]string{}, gameIDs...), "")
	records, err := s.connRepo.ListByParticipant(ctx, guestID, scope)
	if err != nil {
		return fmt.Errorf("list guest connections: %w", err)
	}
	for _, rec := range records {
		throwerID, receiverID := rec.ThrowerID, rec.ReceiverID
		if throwerID == guestID {
			throwerID = to.ID
		}
		if receiverID == guestID {
			receiverID = to.ID
		}
		if throwerID == receiverID {
			if err := s.connRepo.Delete(ctx, rec.ThrowerID, rec.ReceiverID, rec.GameID); err != nil {
				return fmt.Errorf("delete self connection: %w", err)
			}
			continue
		}
		existing, found, err := s.connRepo.Find(ctx, throwerID, receiverID, rec.GameID)
		if err != nil {
			return fmt.Errorf("find connection: %w", err)
		}
		if found {
			delta := rec
			delta.ThrowerID = existing.ThrowerID
			delta.ReceiverID = existing.ReceiverID
			if err := s.connRepo.ApplyDelta(ctx, delta); err != nil {
				return fmt.Errorf("fold guest connection: %w", err)
			}
			if err := s.connRepo.Delete(ctx, rec.ThrowerID, rec.ReceiverID, rec.GameID); err != nil {
				return fmt.Errorf("delete guest connection: %w", err)
			}
		} else {
			if err := s.connRepo.Rekey(ctx, rec, throwerID, receiverID); err != nil {
				return fmt.Errorf("rekey guest connection: %w", err)
			}
		}
	}
	return nil
}
