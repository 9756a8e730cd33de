package service

import (
	"context"
	"errors"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/logging"
)

// HandleTimedOutTable plays for the idle players of a simultaneous turn
// once the action window has passed. Each idle player gets the first card
// in hand that has a legal target and is marked ready, using the same
// commands a client would send. A player who acts in the meantime wins the
// race; their command is kept and the default is dropped.
func HandleTimedOutTable(ctx context.Context, t *Table) error {
	s, err := t.Snapshot(ctx)
	if err != nil {
		return err
	}
	if s.Finished() || s.Mode != game.ModeSimultaneous || s.Phase != game.PhaseSimultaneousSelect {
		return nil
	}
	for _, sel := range s.PlayerSelections {
		if sel.Ready {
			continue
		}
		fields := logging.Fields{constants.LogFieldGameID: s.ID, constants.LogFieldPlayerID: sel.PlayerID}
		if sel.CardID == "" || !selectionComplete(s, sel) {
			cmd, ok := defaultSelection(s, sel.PlayerID)
			if !ok {
				logging.Warn("idle player has no playable card", fields)
				continue
			}
			if _, err := t.Submit(ctx, cmd); err != nil {
				if skippable(err) {
					continue
				}
				return err
			}
		}
		logging.Info("auto-readying idle player", fields)
		res, err := t.Submit(ctx, Command{Kind: CmdReady, PlayerID: sel.PlayerID, Ready: true})
		if err != nil {
			if skippable(err) {
				continue
			}
			return err
		}
		if res.Resolved {
			return nil
		}
	}
	return nil
}

func selectionComplete(s *game.State, sel game.Selection) bool {
	pi := s.PlayerIndex(sel.PlayerID)
	if pi < 0 {
		return false
	}
	hi := s.Players[pi].HandIndex(sel.CardID)
	if hi < 0 {
		return false
	}
	_, needs := s.Players[pi].Hand[hi].TargetKind()
	return !needs || sel.TargetID != ""
}

func defaultSelection(s *game.State, playerID string) (Command, bool) {
	pi := s.PlayerIndex(playerID)
	if pi < 0 {
		return Command{}, false
	}
	for _, card := range s.Players[pi].Hand {
		target, ok := engine.NormalizeTarget(s, card, "")
		if !ok {
			continue
		}
		return Command{Kind: CmdSelection, PlayerID: playerID, CardID: card.ID, TargetID: target}, true
	}
	return Command{}, false
}

// skippable errors mean the player or the batch moved on before the
// default arrived.
func skippable(err error) bool {
	return errors.Is(err, engine.ErrSelectionLocked) ||
		errors.Is(err, engine.ErrWrongPhase) ||
		errors.Is(err, engine.ErrGameOver)
}
