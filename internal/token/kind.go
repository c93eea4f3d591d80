package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	NumberLit
	StringLit

	// ключевые слова
	KwHelp   // help
	KwHive   // hive
	KwBlok   // blok
	KwBowl   // bowl
	KwBonk   // bonk
	KwBrek   // brek
	KwRebonk // rebonk
	KwLoop   // loop
	KwOf     // of
	KwAs     // as
	KwAnd    // and
	KwOr     // or
	KwNull   // null
	KwMany   // many

	// примитивные типы
	KwBuul // buul
	KwShrt // shrt
	KwNubr // nubr
	KwLong // long
	KwFlot // flot
	KwDobl // dobl
	KwStrg // strg

	// операторы и пунктуация
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Assign      // =
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=
	EqEq        // ==
	BangEq      // !=
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	At          // @
	Colon       // :
	Semicolon   // ;
	Comma       // ,
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "end of file",
	Ident:       "identifier",
	NumberLit:   "number",
	StringLit:   "string",
	KwHelp:      "help",
	KwHive:      "hive",
	KwBlok:      "blok",
	KwBowl:      "bowl",
	KwBonk:      "bonk",
	KwBrek:      "brek",
	KwRebonk:    "rebonk",
	KwLoop:      "loop",
	KwOf:        "of",
	KwAs:        "as",
	KwAnd:       "and",
	KwOr:        "or",
	KwNull:      "null",
	KwMany:      "many",
	KwBuul:      "buul",
	KwShrt:      "shrt",
	KwNubr:      "nubr",
	KwLong:      "long",
	KwFlot:      "flot",
	KwDobl:      "dobl",
	KwStrg:      "strg",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Assign:      "=",
	PlusAssign:  "+=",
	MinusAssign: "-=",
	StarAssign:  "*=",
	SlashAssign: "/=",
	EqEq:        "==",
	BangEq:      "!=",
	Lt:          "<",
	LtEq:        "<=",
	Gt:          ">",
	GtEq:        ">=",
	At:          "@",
	Colon:       ":",
	Semicolon:   ";",
	Comma:       ",",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
