package types

// Import copies type id of a foreign interner into in. Nominal hive and blok
// types keep their declaration identity; foreign externals are forced first.
func (in *Interner) Import(from *Interner, id TypeID) (TypeID, error) {
	if from == in {
		return id, nil
	}
	tt, ok := from.Lookup(id)
	if !ok {
		return NoTypeID, nil
	}
	switch tt.Kind {
	case KindMany:
		elem, err := in.Import(from, tt.Elem)
		if err != nil {
			return in.builtins.Error, err
		}
		return in.Many(elem), nil
	case KindHive:
		name := ""
		if info, ok := from.hives[tt.Decl]; ok {
			name = info.Name
		}
		return in.RegisterHive(tt.Decl, name), nil
	case KindBlok:
		if _, ok := in.bloks[tt.Decl]; !ok {
			info := from.bloks[tt.Decl]
			params := make([]Param, len(info.Params))
			for i, p := range info.Params {
				pt, err := in.Import(from, p.Type)
				if err != nil {
					return in.builtins.Error, err
				}
				params[i] = Param{Name: p.Name, Type: pt, Decl: p.Decl}
			}
			in.DeclareBlok(tt.Decl, info.Name, params)
		}
		result, err := in.Import(from, tt.Elem)
		if err != nil {
			return in.builtins.Error, err
		}
		return in.Blok(tt.Decl, result), nil
	case KindExternal:
		resolved, err := from.Resolve(id)
		if err != nil {
			return in.builtins.Error, err
		}
		return in.Import(from, resolved)
	default:
		// фиксированные типы совпадают по форме
		return in.Intern(Type{Kind: tt.Kind}), nil
	}
}
