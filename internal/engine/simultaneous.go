package engine

import (
	"fmt"

	"github.com/ericogr/dungeon-party/internal/game"
)

// beginSimultaneousTurn deals every living player in and opens one
// selection per player in definition order. That order is the resolution
// order, whatever order players submit in. Stunned players lose the turn
// and are entered as ready with no card.
func (tc *turnContext) beginSimultaneousTurn() {
	tc.s.PlayerSelections = tc.s.PlayerSelections[:0]
	for i := range tc.s.Players {
		p := &tc.s.Players[i]
		if !p.IsAlive() {
			continue
		}
		sel := game.Selection{PlayerID: p.ID, EnhanceMode: p.EnhanceMode}
		if p.Stunned() {
			tc.add(fmt.Sprintf("%s is stunned and skips the turn", p.Name), game.LogDebuff)
			p.TickActionTracked()
			sel.Ready = true
		} else {
			tc.drawUpTo(i)
		}
		tc.s.PlayerSelections = append(tc.s.PlayerSelections, sel)
	}
	tc.setPhase(game.PhaseSimultaneousSelect)
	if AllReady(tc.s) {
		tc.resolveBatch()
	}
}

func selectionIndex(s *game.State, playerID string) int {
	for i := range s.PlayerSelections {
		if s.PlayerSelections[i].PlayerID == playerID {
			return i
		}
	}
	return -1
}

// openSelection finds the caller's selection while selections are open.
func openSelection(s *game.State, playerID string) (int, error) {
	if s.Finished() {
		return -1, ErrGameOver
	}
	if s.Mode != game.ModeSimultaneous {
		return -1, ErrUnsupportedMode
	}
	if s.Phase != game.PhaseSimultaneousSelect {
		return -1, ErrWrongPhase
	}
	if _, err := playerIndex(s, playerID); err != nil {
		return -1, err
	}
	si := selectionIndex(s, playerID)
	if si < 0 {
		return -1, ErrUnknownPlayer
	}
	if s.PlayerSelections[si].Ready {
		return -1, ErrSelectionLocked
	}
	return si, nil
}

// SetPlayerSelection records a player's choice. The latest write wins;
// a ready player must un-ready first. A queued special stays queued.
func (e *Engine) SetPlayerSelection(s *game.State, playerID, cardID, targetID string, enhance bool) (*game.State, []game.Event, error) {
	si, err := openSelection(s, playerID)
	if err != nil {
		return nil, nil, err
	}
	pi := s.PlayerIndex(playerID)
	hi := s.Players[pi].HandIndex(cardID)
	if hi < 0 {
		return nil, nil, ErrCardNotInHand
	}
	card := s.Players[pi].Hand[hi]
	if _, needs := card.TargetKind(); needs {
		legal := LegalTargets(s, card)
		switch {
		case len(legal) == 0:
			return nil, nil, ErrNoLegalTarget
		case targetID == "" && len(legal) == 1:
			targetID = legal[0]
		case targetID != "" && !contains(legal, targetID):
			return nil, nil, fmt.Errorf("%w: %s", ErrIllegalTarget, targetID)
		}
	} else {
		targetID = ""
	}

	tc := e.begin(s)
	sel := &tc.s.PlayerSelections[si]
	sel.CardID, sel.TargetID, sel.EnhanceMode = cardID, targetID, enhance
	tc.s.Players[pi].EnhanceMode = enhance
	st, events := tc.done()
	return st, events, nil
}

// SetPlayerReady marks a player ready (requires a complete selection) or
// un-ready. It never resolves the batch; the host checks AllReady and calls
// ResolveSimultaneous.
func (e *Engine) SetPlayerReady(s *game.State, playerID string, ready bool) (*game.State, []game.Event, error) {
	if s.Finished() {
		return nil, nil, ErrGameOver
	}
	if s.Mode != game.ModeSimultaneous {
		return nil, nil, ErrUnsupportedMode
	}
	if s.Phase != game.PhaseSimultaneousSelect {
		return nil, nil, ErrWrongPhase
	}
	si := selectionIndex(s, playerID)
	if si < 0 {
		return nil, nil, ErrUnknownPlayer
	}
	if ready && !complete(s, s.PlayerSelections[si]) {
		return nil, nil, ErrSelectionIncomplete
	}
	tc := e.begin(s)
	tc.s.PlayerSelections[si].Ready = ready
	st, events := tc.done()
	return st, events, nil
}

func complete(s *game.State, sel game.Selection) bool {
	pi := s.PlayerIndex(sel.PlayerID)
	if pi < 0 || sel.CardID == "" {
		return false
	}
	hi := s.Players[pi].HandIndex(sel.CardID)
	if hi < 0 {
		return false
	}
	if _, needs := s.Players[pi].Hand[hi].TargetKind(); needs && sel.TargetID == "" {
		return false
	}
	return true
}

// AllReady reports whether every open selection is ready.
func AllReady(s *game.State) bool {
	if s.Phase != game.PhaseSimultaneousSelect || len(s.PlayerSelections) == 0 {
		return false
	}
	for _, sel := range s.PlayerSelections {
		if !sel.Ready {
			return false
		}
	}
	return true
}

// ResolveSimultaneous replays every selection in its fixed order (a queued
// special fires just before its owner's card), then the
// monster phase, the debuff sweep and the next turn. The whole batch is one
// transition, so observers never see it half done.
func (e *Engine) ResolveSimultaneous(s *game.State) (*game.State, []game.Event, error) {
	if s.Finished() {
		return nil, nil, ErrGameOver
	}
	if s.Mode != game.ModeSimultaneous {
		return nil, nil, ErrUnsupportedMode
	}
	if !AllReady(s) {
		return nil, nil, ErrSelectionIncomplete
	}
	tc := e.begin(s)
	if err := tc.resolveBatch(); err != nil {
		return nil, nil, err
	}
	st, events := tc.done()
	return st, events, nil
}

func (tc *turnContext) resolveBatch() error {
	tc.setPhase(game.PhaseSimultaneousRun)
	selections := append([]game.Selection(nil), tc.s.PlayerSelections...)
	for _, sel := range selections {
		if tc.s.AllMonstersDead() {
			break
		}
		pi := tc.s.PlayerIndex(sel.PlayerID)
		if pi < 0 || !tc.s.Players[pi].IsAlive() {
			continue
		}
		if sel.Special {
			tc.s.CurrentPlayerIndex = pi
			if err := tc.queuedSpecial(pi); err != nil {
				return err
			}
			if tc.checkTerminal() {
				return nil
			}
		}
		p := &tc.s.Players[pi]
		if sel.CardID == "" || !p.IsAlive() {
			continue
		}
		hi := p.HandIndex(sel.CardID)
		if hi < 0 {
			return fmt.Errorf("%w: %s", ErrCardNotInHand, sel.CardID)
		}
		card := p.Hand[hi]
		target, ok := NormalizeTarget(tc.s, card, sel.TargetID)
		if !ok {
			tc.add(fmt.Sprintf("%s's %s has no target left", p.Name, card.Name), game.LogInfo)
			continue
		}
		if target != sel.TargetID {
			tc.addSub(fmt.Sprintf("%s retargets %s to %s", p.Name, card.Name, combatantName(tc.s, target)), game.LogInfo)
		}
		tc.s.CurrentPlayerIndex = pi
		tc.rollAggro(pi, card)
		if err := tc.playCard(pi, card.ID, target, sel.EnhanceMode); err != nil {
			return err
		}
		if tc.checkTerminal() {
			return nil
		}
	}
	tc.s.PlayerSelections = nil
	if tc.checkTerminal() {
		return nil
	}
	tc.finishTurn()
	return nil
}

// queuedSpecial fires a special queued during selection if the gauge is
// still full.
func (tc *turnContext) queuedSpecial(pi int) error {
	p := &tc.s.Players[pi]
	if !gaugeFull(p) {
		tc.add(fmt.Sprintf("%s's special fizzles", p.Name), game.LogInfo)
		return nil
	}
	return tc.special(pi)
}
