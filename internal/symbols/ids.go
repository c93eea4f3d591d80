package symbols

// ScopeID identifies a scope in the resolver arena.
type ScopeID uint32

const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }
