package types

import (
	"strings"
)

// Label returns a user-friendly label for a TypeID.
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID || typesIn == nil {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindMany:
		return "many " + labelDepth(typesIn, tt.Elem, depth+1)
	case KindHive:
		if info, ok := typesIn.hives[tt.Decl]; ok {
			return info.Name
		}
		return "hive"
	case KindBlok:
		return formatBlokType(typesIn, tt, depth)
	case KindExternal:
		ext := &typesIn.externals[tt.Payload]
		if ext.state == externalDone && ext.err == nil {
			return labelDepth(typesIn, ext.target, depth+1)
		}
		return ext.Name + " of " + ext.Module
	default:
		return tt.Kind.String()
	}
}

func formatBlokType(typesIn *Interner, tt Type, depth int) string {
	var sb strings.Builder
	sb.WriteString("blok")
	info := typesIn.bloks[tt.Decl]
	if info != nil && info.Name != "" {
		sb.WriteByte(' ')
		sb.WriteString(info.Name)
	}
	if info != nil && len(info.Params) > 0 {
		sb.WriteByte('[')
		for i, p := range info.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
			sb.WriteString(": ")
			sb.WriteString(labelDepth(typesIn, p.Type, depth+1))
		}
		sb.WriteByte(']')
	}
	sb.WriteString(": ")
	sb.WriteString(labelDepth(typesIn, tt.Elem, depth+1))
	return sb.String()
}
