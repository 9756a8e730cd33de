// Command simulate plays a seeded game headlessly with the autopilot and
// prints the combat log. Two runs with the same flags print the same log.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ericogr/dungeon-party/internal/config"
	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/logging"
	"github.com/ericogr/dungeon-party/internal/service"
)

func main() {
	contentPath := flag.String("content", "./dungeon_content.yaml", "content catalogue")
	mode := flag.String("mode", string(game.ModeSequential), "sequential or simultaneous")
	classes := flag.String("party", "warrior,rogue,cleric,mage", "comma separated classes, one hero each")
	seed := flag.Uint64("seed", 1, "rng seed")
	maxSteps := flag.Int("max-steps", 10000, "stop after this many commands")
	logLevel := flag.String("log-level", "warn", "debug, info, warn or error")
	flag.Parse()

	logging.SetLevel(*logLevel)
	defer logging.Sync()

	loaded, err := config.LoadContent(*contentPath)
	if err != nil {
		logging.Fatal("Missing or invalid content file", err, logging.Fields{"content_path": *contentPath})
	}
	eng := engine.New(&loaded.Content, loaded.DirectiveErrors)

	var seats []engine.Seat
	for i, cl := range strings.Split(*classes, ",") {
		cl = strings.TrimSpace(cl)
		if cl == "" {
			continue
		}
		id := fmt.Sprintf("p%d", i+1)
		seats = append(seats, engine.Seat{ID: id, Name: fmt.Sprintf("%s %d", cl, i+1), Class: game.Class(cl)})
	}
	s, _, err := eng.NewGame(engine.Setup{ID: "simulation", Mode: game.Mode(*mode), Seed: *seed, Seats: seats})
	if err != nil {
		logging.Fatal("Cannot set up game", err, nil)
	}

	steps := 0
	for ; steps < *maxSteps; steps++ {
		cmd, ok := service.NextAutoCommand(s)
		if !ok {
			break
		}
		res, err := service.SubmitAction(eng, s, cmd)
		if err != nil {
			logging.Error("autopilot command rejected", err, logging.Fields{constants.LogFieldCommand: string(cmd.Kind), constants.LogFieldPlayerID: cmd.PlayerID})
			break
		}
		s = res.State
	}

	for _, le := range s.Log {
		indent := ""
		if le.IsSubEntry {
			indent = "  "
		}
		fmt.Printf("[t%02d %-20s] %s%s\n", le.Turn, le.Phase, indent, le.Message)
	}
	fmt.Printf("\nresult: %s after round %d turn %d (%d commands)\n", s.Status, s.Round, s.Turn, steps)
	for _, p := range s.Players {
		fmt.Printf("  %-12s %-8s hp %3d/%-3d gold %d\n", p.Name, p.Class, p.HP, p.MaxHP, p.Gold)
	}
	if !s.Finished() {
		os.Exit(2)
	}
}
