package engine

import (
	"fmt"

	"github.com/ericogr/dungeon-party/internal/game"
)

// sequentialActor validates that playerID may act now in sequential mode.
func sequentialActor(s *game.State, playerID string, phases ...game.Phase) (int, error) {
	if s.Finished() {
		return -1, ErrGameOver
	}
	if s.Mode != game.ModeSequential {
		return -1, ErrUnsupportedMode
	}
	pi, err := playerIndex(s, playerID)
	if err != nil {
		return -1, err
	}
	allowed := false
	for _, ph := range phases {
		if s.Phase == ph {
			allowed = true
		}
	}
	if !allowed {
		return -1, ErrWrongPhase
	}
	if pi != s.CurrentPlayerIndex {
		return -1, ErrNotYourTurn
	}
	return pi, nil
}

// SelectCard picks a card from the current player's hand. Cards needing no
// target, or with exactly one legal target, go straight to the aggro roll.
func (e *Engine) SelectCard(s *game.State, playerID, cardID string) (*game.State, []game.Event, error) {
	pi, err := sequentialActor(s, playerID, game.PhaseSelect, game.PhaseTargetSelect, game.PhaseAggro)
	if err != nil {
		return nil, nil, err
	}
	hi := s.Players[pi].HandIndex(cardID)
	if hi < 0 {
		return nil, nil, ErrCardNotInHand
	}
	card := s.Players[pi].Hand[hi]

	tc := e.begin(s)
	tc.s.SelectedCardID = cardID
	tc.s.SelectedTargetID = ""
	if _, needs := card.TargetKind(); needs {
		legal := LegalTargets(tc.s, card)
		switch len(legal) {
		case 0:
			return nil, nil, ErrNoLegalTarget
		case 1:
			tc.s.SelectedTargetID = legal[0]
		default:
			tc.setPhase(game.PhaseTargetSelect)
			st, events := tc.done()
			return st, events, nil
		}
	}
	tc.setPhase(game.PhaseAggro)
	st, events := tc.done()
	return st, events, nil
}

// SelectTarget records a target for the selected card. It may be changed
// until ConfirmTarget.
func (e *Engine) SelectTarget(s *game.State, playerID, targetID string) (*game.State, []game.Event, error) {
	pi, err := sequentialActor(s, playerID, game.PhaseTargetSelect)
	if err != nil {
		return nil, nil, err
	}
	card, err := selectedCard(s, pi)
	if err != nil {
		return nil, nil, err
	}
	if !contains(LegalTargets(s, card), targetID) {
		return nil, nil, fmt.Errorf("%w: %s", ErrIllegalTarget, targetID)
	}
	tc := e.begin(s)
	tc.s.SelectedTargetID = targetID
	st, events := tc.done()
	return st, events, nil
}

// ConfirmTarget locks the chosen target in and moves to the aggro roll.
func (e *Engine) ConfirmTarget(s *game.State, playerID string) (*game.State, []game.Event, error) {
	if _, err := sequentialActor(s, playerID, game.PhaseTargetSelect); err != nil {
		return nil, nil, err
	}
	if s.SelectedTargetID == "" {
		return nil, nil, ErrTargetRequired
	}
	tc := e.begin(s)
	tc.setPhase(game.PhaseAggro)
	st, events := tc.done()
	return st, events, nil
}

// RollAggro commits the selected card: aggro roll, card pipeline, terminal
// check, then the next player's draw or the monster phase and the debuff
// sweep, all in this one transition.
func (e *Engine) RollAggro(s *game.State, playerID string) (*game.State, []game.Event, error) {
	pi, err := sequentialActor(s, playerID, game.PhaseAggro)
	if err != nil {
		return nil, nil, err
	}
	card, err := selectedCard(s, pi)
	if err != nil {
		return nil, nil, err
	}
	if _, needs := card.TargetKind(); needs && s.SelectedTargetID == "" {
		return nil, nil, ErrTargetRequired
	}

	tc := e.begin(s)
	tc.rollAggro(pi, card)
	tc.setPhase(game.PhasePlayerAction)
	p := &tc.s.Players[pi]
	if err := tc.playCard(pi, card.ID, tc.s.SelectedTargetID, p.EnhanceMode); err != nil {
		return nil, nil, err
	}
	tc.s.SelectedCardID, tc.s.SelectedTargetID = "", ""
	if tc.checkTerminal() {
		st, events := tc.done()
		return st, events, nil
	}
	tc.beginPlayerTurn(pi + 1)
	st, events := tc.done()
	return st, events, nil
}

// UseSpecialAbility spends a full resource gauge on the class special. It
// is a free action: the player still plays a card afterwards. In
// simultaneous mode the special is only queued on the open selection and
// fires when the batch resolves.
func (e *Engine) UseSpecialAbility(s *game.State, playerID string) (*game.State, []game.Event, error) {
	if s.Mode == game.ModeSimultaneous {
		si, err := openSelection(s, playerID)
		if err != nil {
			return nil, nil, err
		}
		if !gaugeFull(&s.Players[s.PlayerIndex(playerID)]) {
			return nil, nil, ErrResourceNotFull
		}
		tc := e.begin(s)
		tc.s.PlayerSelections[si].Special = true
		st, events := tc.done()
		return st, events, nil
	}
	pi, err := sequentialActor(s, playerID, game.PhaseSelect)
	if err != nil {
		return nil, nil, err
	}
	if !gaugeFull(&s.Players[pi]) {
		return nil, nil, ErrResourceNotFull
	}
	tc := e.begin(s)
	if err := tc.special(pi); err != nil {
		return nil, nil, err
	}
	tc.checkTerminal()
	st, events := tc.done()
	return st, events, nil
}

func gaugeFull(p *game.Player) bool {
	return p.MaxResource > 0 && p.Resource >= p.MaxResource
}

// special empties the gauge and applies the class special's effects.
func (tc *turnContext) special(pi int) error {
	p := &tc.s.Players[pi]
	cl := tc.e.content.Classes[p.Class]
	actorID, name := p.ID, p.Name
	p.Resource = 0
	tc.add(fmt.Sprintf("%s unleashes %s", name, cl.Special.Name), game.LogBuff)
	tc.toast(fmt.Sprintf("%s: %s", name, cl.Special.Name))
	tc.animate(actorID, game.AnimationCast)
	for _, eff := range cl.Special.Effects {
		if _, err := tc.apply(eff, actorID, ""); err != nil {
			return err
		}
	}
	tc.clearAnimation(actorID, game.AnimationCast)
	return nil
}

// SetEnhanceMode toggles whether the next card spends a full gauge on the
// class enhancement bonus. In simultaneous mode it edits the open
// selection, which is what the batch reads.
func (e *Engine) SetEnhanceMode(s *game.State, playerID string, on bool) (*game.State, []game.Event, error) {
	if s.Mode == game.ModeSimultaneous {
		si, err := openSelection(s, playerID)
		if err != nil {
			return nil, nil, err
		}
		tc := e.begin(s)
		tc.s.PlayerSelections[si].EnhanceMode = on
		tc.s.Players[tc.s.PlayerIndex(playerID)].EnhanceMode = on
		st, events := tc.done()
		return st, events, nil
	}
	if s.Finished() {
		return nil, nil, ErrGameOver
	}
	pi, err := playerIndex(s, playerID)
	if err != nil {
		return nil, nil, err
	}
	tc := e.begin(s)
	tc.s.Players[pi].EnhanceMode = on
	st, events := tc.done()
	return st, events, nil
}

func selectedCard(s *game.State, pi int) (game.Card, error) {
	if s.SelectedCardID == "" {
		return game.Card{}, ErrCardNotInHand
	}
	p := &s.Players[pi]
	hi := p.HandIndex(s.SelectedCardID)
	if hi < 0 {
		return game.Card{}, ErrCardNotInHand
	}
	return p.Hand[hi], nil
}
