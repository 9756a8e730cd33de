package service

import (
	"fmt"

	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/game"
)

type CommandKind string

const (
	CmdStartEncounter CommandKind = "start_encounter"
	CmdSelectCard     CommandKind = "select_card"
	CmdSelectTarget   CommandKind = "select_target"
	CmdConfirmTarget  CommandKind = "confirm_target"
	CmdRollAggro      CommandKind = "roll_aggro"
	CmdSpecial        CommandKind = "special_ability"
	CmdEnhanceMode    CommandKind = "enhance_mode"
	CmdSelection      CommandKind = "selection"
	CmdReady          CommandKind = "ready"
)

// Command is one inbound player message.
type Command struct {
	Kind     CommandKind `json:"kind"`
	PlayerID string      `json:"player_id"`
	CardID   string      `json:"card_id,omitempty"`
	TargetID string      `json:"target_id,omitempty"`
	Enhance  bool        `json:"enhance,omitempty"`
	Ready    bool        `json:"ready,omitempty"`
}

// Result is what a committed command produced.
type Result struct {
	State    *game.State  `json:"game"`
	Events   []game.Event `json:"events"`
	Resolved bool         `json:"resolved"`
}

// hidden reports commands whose outcome stays private to the table until
// the batch resolves.
func (c Command) hidden(mode game.Mode) bool {
	switch c.Kind {
	case CmdSelection, CmdReady:
		return true
	case CmdSpecial, CmdEnhanceMode:
		return mode == game.ModeSimultaneous
	}
	return false
}

// applyCommand routes a command to its engine operation.
func applyCommand(eng *engine.Engine, s *game.State, cmd Command) (*game.State, []game.Event, error) {
	switch cmd.Kind {
	case CmdStartEncounter:
		return eng.StartEncounter(s)
	case CmdSelectCard:
		return eng.SelectCard(s, cmd.PlayerID, cmd.CardID)
	case CmdSelectTarget:
		return eng.SelectTarget(s, cmd.PlayerID, cmd.TargetID)
	case CmdConfirmTarget:
		return eng.ConfirmTarget(s, cmd.PlayerID)
	case CmdRollAggro:
		return eng.RollAggro(s, cmd.PlayerID)
	case CmdSpecial:
		return eng.UseSpecialAbility(s, cmd.PlayerID)
	case CmdEnhanceMode:
		return eng.SetEnhanceMode(s, cmd.PlayerID, cmd.Enhance)
	case CmdSelection:
		return eng.SetPlayerSelection(s, cmd.PlayerID, cmd.CardID, cmd.TargetID, cmd.Enhance)
	case CmdReady:
		return eng.SetPlayerReady(s, cmd.PlayerID, cmd.Ready)
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
}

// SubmitAction applies cmd and, when that leaves every selection ready,
// resolves the simultaneous batch in the same step.
func SubmitAction(eng *engine.Engine, s *game.State, cmd Command) (Result, error) {
	next, events, err := applyCommand(eng, s, cmd)
	if err != nil {
		return Result{}, err
	}
	res := Result{State: next, Events: events}
	if next.Mode == game.ModeSimultaneous && engine.AllReady(next) {
		resolved, more, err := eng.ResolveSimultaneous(next)
		if err != nil {
			return Result{}, err
		}
		res.State = resolved
		res.Events = append(res.Events, more...)
		res.Resolved = true
	}
	return res, nil
}
