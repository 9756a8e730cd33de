package service

import (
	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/game"
)

// NextAutoCommand returns the command a simple autopilot would send next:
// specials as soon as they are charged, then the first card in hand with
// a legal target aimed at the first legal target. ok is false when the
// game is over or nobody can act.
func NextAutoCommand(s *game.State) (Command, bool) {
	if s.Finished() {
		return Command{}, false
	}
	switch s.Phase {
	case game.PhaseReward, game.PhaseShop:
		ids := s.LivingPlayerIDs()
		if len(ids) == 0 {
			return Command{}, false
		}
		return Command{Kind: CmdStartEncounter, PlayerID: ids[0]}, true
	case game.PhaseSimultaneousSelect:
		for _, sel := range s.PlayerSelections {
			if sel.Ready {
				continue
			}
			if pi := s.PlayerIndex(sel.PlayerID); pi >= 0 && !sel.Special && charged(&s.Players[pi]) {
				return Command{Kind: CmdSpecial, PlayerID: sel.PlayerID}, true
			}
			if sel.CardID != "" && selectionComplete(s, sel) {
				return Command{Kind: CmdReady, PlayerID: sel.PlayerID, Ready: true}, true
			}
			return defaultSelection(s, sel.PlayerID)
		}
		return Command{}, false
	}

	p := s.CurrentPlayer()
	if p == nil {
		return Command{}, false
	}
	switch s.Phase {
	case game.PhaseSelect:
		if charged(p) {
			return Command{Kind: CmdSpecial, PlayerID: p.ID}, true
		}
		sel, ok := defaultSelection(s, p.ID)
		if !ok {
			return Command{}, false
		}
		return Command{Kind: CmdSelectCard, PlayerID: p.ID, CardID: sel.CardID}, true
	case game.PhaseTargetSelect:
		if s.SelectedTargetID != "" {
			return Command{Kind: CmdConfirmTarget, PlayerID: p.ID}, true
		}
		hi := p.HandIndex(s.SelectedCardID)
		if hi < 0 {
			return Command{}, false
		}
		target, ok := engine.NormalizeTarget(s, p.Hand[hi], "")
		if !ok {
			return Command{}, false
		}
		return Command{Kind: CmdSelectTarget, PlayerID: p.ID, TargetID: target}, true
	case game.PhaseAggro:
		return Command{Kind: CmdRollAggro, PlayerID: p.ID}, true
	}
	return Command{}, false
}

func charged(p *game.Player) bool { return p.MaxResource > 0 && p.Resource >= p.MaxResource }
