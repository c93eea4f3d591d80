package token

var keywords = map[string]Kind{
	"help":   KwHelp,
	"hive":   KwHive,
	"blok":   KwBlok,
	"bowl":   KwBowl,
	"bonk":   KwBonk,
	"brek":   KwBrek,
	"rebonk": KwRebonk,
	"loop":   KwLoop,
	"of":     KwOf,
	"as":     KwAs,
	"and":    KwAnd,
	"or":     KwOr,
	"null":   KwNull,
	"many":   KwMany,
	"buul":   KwBuul,
	"shrt":   KwShrt,
	"nubr":   KwNubr,
	"long":   KwLong,
	"flot":   KwFlot,
	"dobl":   KwDobl,
	"strg":   KwStrg,
}

// LookupKeyword возвращает Kind ключевого слова (ok=false, если это не keyword).
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
