package dice

import "math/rand/v2"

// Roller is a serializable deterministic random source.
//
// # Determinism
//
// Every draw builds a PCG generator from (Seed, Draws) and then advances
// Draws, so the whole random state is two integers. A game restored from a
// snapshot continues with exactly the rolls the original would have made,
// and two hosts starting from the same seed and inputs agree on every roll.
type Roller struct {
	Seed  uint64 `json:"seed"`
	Draws uint64 `json:"draws"`
}

// New returns a roller at draw zero.
func New(seed uint64) Roller { return Roller{Seed: seed} }

func (r *Roller) next() *rand.Rand {
	rng := rand.New(rand.NewPCG(r.Seed, r.Draws))
	r.Draws++
	return rng
}

// D20 rolls the aggro die.
func (r *Roller) D20() int { return rollDie(r.next(), 20) }

// D6 rolls the monster ability die.
func (r *Roller) D6() int { return rollDie(r.next(), 6) }

// Shuffle permutes n elements with a single draw.
func (r *Roller) Shuffle(n int, swap func(i, j int)) {
	if n < 2 {
		return
	}
	r.next().Shuffle(n, swap)
}

func rollDie(rng *rand.Rand, sides int) int {
	return rng.IntN(sides) + 1
}
