package engine

import (
	"fmt"

	"github.com/ericogr/dungeon-party/internal/dice"
	"github.com/ericogr/dungeon-party/internal/game"
)

// Engine runs combat transitions against a fixed content catalogue. It holds
// no game state; every operation takes a state and returns the next one.
type Engine struct {
	content         *game.Content
	directiveErrors map[string]string
}

// New builds an engine. directiveErrors lists cards whose scaling note did
// not parse; playing one reports a warning in the game log.
func New(content *game.Content, directiveErrors map[string]string) *Engine {
	if directiveErrors == nil {
		directiveErrors = map[string]string{}
	}
	return &Engine{content: content, directiveErrors: directiveErrors}
}

// Content exposes the catalogue the engine plays with.
func (e *Engine) Content() *game.Content { return e.content }

// Seat describes one hero joining a game.
type Seat struct {
	ID         string
	Name       string
	Class      game.Class
	ChampionID string
}

type Setup struct {
	ID    string
	Mode  game.Mode
	Seed  uint64
	Seats []Seat
}

// NewGame deals decks and starts the first encounter.
func (e *Engine) NewGame(setup Setup) (*game.State, []game.Event, error) {
	if len(setup.Seats) == 0 {
		return nil, nil, ErrNoPlayers
	}
	switch setup.Mode {
	case game.ModeSequential, game.ModeSimultaneous:
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, setup.Mode)
	}
	s := &game.State{
		ID:     setup.ID,
		Mode:   setup.Mode,
		Status: game.StatusInProgress,
		RNG:    dice.New(setup.Seed),
	}
	for _, seat := range setup.Seats {
		cl, ok := e.content.Classes[seat.Class]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownClass, seat.Class)
		}
		if s.PlayerIndex(seat.ID) >= 0 {
			return nil, nil, fmt.Errorf("duplicate player id %s", seat.ID)
		}
		p := game.Player{
			Combatant: game.Combatant{
				ID:    seat.ID,
				Name:  seat.Name,
				HP:    cl.MaxHP,
				MaxHP: cl.MaxHP,
			},
			Class:       cl.Name,
			MaxResource: cl.MaxResource,
			Mana:        clamp(cl.StartMana, 0, cl.MaxMana),
			MaxMana:     cl.MaxMana,
			ChampionID:  seat.ChampionID,
		}
		for _, id := range cl.Deck {
			p.Deck = append(p.Deck, e.content.Cards[id])
		}
		s.RNG.Shuffle(len(p.Deck), func(i, j int) { p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i] })
		s.Players = append(s.Players, p)
	}

	tc := e.begin(s)
	if err := tc.startEncounter(1); err != nil {
		return nil, nil, err
	}
	st, events := tc.done()
	return st, events, nil
}

// startEncounter loads the wave for round and starts its first turn.
func (tc *turnContext) startEncounter(round int) error {
	enc, ok := tc.e.content.Encounter(round)
	if !ok {
		return ErrNoNextEncounter
	}
	tc.s.Round = round
	tc.s.Turn = 0
	tc.s.Monsters = tc.s.Monsters[:0]
	for i, em := range enc.Monsters {
		def := tc.e.content.Monsters[em.Monster]
		m := game.Monster{
			Combatant: game.Combatant{
				ID:     fmt.Sprintf("%s-%d", def.ID, i+1),
				Name:   def.Name,
				HP:     def.MaxHP,
				MaxHP:  def.MaxHP,
				Shield: def.Shield,
			},
			Abilities:  def.Abilities,
			Elite:      em.Elite,
			GoldReward: def.GoldReward,
			XPReward:   def.XPReward,
		}
		if m.Name == "" {
			m.Name = def.ID
		}
		if m.Elite != game.EliteNone {
			m.Name = fmt.Sprintf("%s (%s)", m.Name, m.Elite)
		}
		tc.s.Monsters = append(tc.s.Monsters, m.Clone())
	}
	tc.s.Environment = game.Environment{Name: enc.Environment}
	if env, ok := tc.e.content.Environments[enc.Environment]; ok {
		tc.s.Environment = env
	}

	for i := range tc.s.Players {
		p := &tc.s.Players[i]
		p.BaseAggro, p.DiceAggro = 0, 0
		p.Shield = 0
		p.Buffs, p.Debuffs = nil, nil
		p.Deck = append(p.Deck, p.Hand...)
		p.Deck = append(p.Deck, p.Discard...)
		p.Hand, p.Discard = nil, nil
		tc.s.RNG.Shuffle(len(p.Deck), func(a, b int) { p.Deck[a], p.Deck[b] = p.Deck[b], p.Deck[a] })
	}
	tc.s.SelectedCardID, tc.s.SelectedTargetID = "", ""

	msg := fmt.Sprintf("Round %d begins", round)
	if tc.s.Environment.Name != "" {
		msg += " in the " + tc.s.Environment.Name
	}
	tc.add(msg, game.LogPhase)
	tc.startTurn()
	return nil
}

// StartEncounter moves from the reward or shop screen to the next round.
func (e *Engine) StartEncounter(s *game.State) (*game.State, []game.Event, error) {
	if s.Finished() {
		return nil, nil, ErrGameOver
	}
	if s.Phase != game.PhaseReward && s.Phase != game.PhaseShop {
		return nil, nil, ErrWrongPhase
	}
	tc := e.begin(s)
	if err := tc.startEncounter(s.Round + 1); err != nil {
		return nil, nil, err
	}
	st, events := tc.done()
	return st, events, nil
}
