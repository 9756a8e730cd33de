package directive

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Directive is the parsed form of a bracketed scaling note in a card
// description, for example:
//
//	[Faith 50%: +2 heal; Faith 100%: +4 heal, +3 shield to allAllies]
//	[Mana Empowered: +2 burn for 2 to allMonsters]
type Directive struct {
	Clauses []*Clause `parser:"@@ ( \";\" @@ )*"`
}

type Clause struct {
	Gauge   string   `parser:"@( \"Faith\" | \"Mana\" )"`
	Tier    string   `parser:"@( Percent | \"Empowered\" | \"Depowered\" ) \":\""`
	Bonuses []*Bonus `parser:"@@ ( \",\" @@ )*"`
}

type Bonus struct {
	Value    int    `parser:"\"+\" @Int"`
	Type     string `parser:"@Ident"`
	Duration int    `parser:"( \"for\" @Int )?"`
	Target   string `parser:"( \"to\" @Ident )?"`
}

var parser = participle.MustBuild[Directive](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "whitespace", Pattern: `\s+`},
		{Name: "Percent", Pattern: `\d+%`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
		{Name: "Punct", Pattern: `[+:;,]`},
	})),
	participle.UseLookahead(2),
)
