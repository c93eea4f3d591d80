package types

// PointerSize is the footprint of reference-like values.
const PointerSize = 8

// Footprint returns the byte size of values of type id. External types are
// measured after resolution; a failed resolution measures 0.
func (in *Interner) Footprint(id TypeID) uint32 {
	if in.Kind(id) == KindExternal {
		resolved, err := in.Resolve(id)
		if err != nil {
			return 0
		}
		id = resolved
	}
	switch in.Kind(id) {
	case KindBuul:
		return 1
	case KindShrt:
		return 2
	case KindNubr, KindFlot:
		return 4
	case KindLong, KindDobl:
		return 8
	case KindStrg, KindHive, KindBlok, KindMany, KindNull:
		return PointerSize
	default:
		return 0
	}
}
