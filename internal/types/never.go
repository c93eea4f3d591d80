package types

// ContainsNever reports whether Never occurs anywhere inside id. Unforced
// external types are opaque and never contain it.
func (in *Interner) ContainsNever(id TypeID) bool {
	for depth := 0; depth < 64; depth++ {
		tt, ok := in.Lookup(id)
		if !ok {
			return false
		}
		switch tt.Kind {
		case KindNever:
			return true
		case KindMany:
			id = tt.Elem
		case KindBlok:
			if info, ok := in.bloks[tt.Decl]; ok {
				for _, p := range info.Params {
					if in.ContainsNever(p.Type) {
						return true
					}
				}
			}
			id = tt.Elem
		case KindExternal:
			ext := &in.externals[tt.Payload]
			if ext.state != externalDone || ext.err != nil {
				return false
			}
			id = ext.target
		default:
			return false
		}
	}
	return false
}

// IsNever reports whether id is exactly Never.
func (in *Interner) IsNever(id TypeID) bool { return in.Kind(id) == KindNever }

// IsError reports whether id is the Error sentinel.
func (in *Interner) IsError(id TypeID) bool { return in.Kind(id) == KindError }
