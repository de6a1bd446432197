// Package conform implements the recursive structural match between a
// claim tree and a schema tree. It is a pure function of its two tree
// arguments: no registry or vault dependency.
package conform

import "github.com/ParichayaHQ/credentiald/pkg/vctypes"

// Subject reports whether a credential_subject map conforms to a
// schema's property map: every schema key must exist in claim, and the
// corresponding subtrees must match per Property. Extra keys in claim
// are tolerated (weak width subtyping).
func Subject(schema map[string]vctypes.SchemaProperty, claim map[string]vctypes.ClaimProperty) bool {
	for key, schemaProp := range schema {
		claimProp, ok := claim[key]
		if !ok {
			return false
		}
		if !Property(schemaProp, claimProp) {
			return false
		}
	}
	return true
}

// Property reports whether a single claim node conforms to a single
// schema node.
func Property(schema vctypes.SchemaProperty, claim vctypes.ClaimProperty) bool {
	if schema.Kind != claim.Kind {
		return false
	}
	switch schema.Kind {
	case vctypes.KindValue:
		return valueConforms(schema.Value, claim.Value)
	case vctypes.KindArray:
		return arrayConforms(schema.Array, claim.Array)
	case vctypes.KindMap:
		return Subject(schema.Map, claim.Map)
	default:
		return false
	}
}

func valueConforms(schema *vctypes.SchemaPropertyValue, claim *vctypes.ClaimPropertyValue) bool {
	if schema == nil || claim == nil {
		return false
	}
	switch schema.LeafType {
	case vctypes.LeafText:
		return claim.Kind == vctypes.ClaimText
	case vctypes.LeafNumber:
		return claim.Kind == vctypes.ClaimNumber
	case vctypes.LeafBoolean:
		return claim.Kind == vctypes.ClaimBoolean
	default:
		return false
	}
}

// arrayConforms requires equal length (arrays are fixed-shape
// templates) and positional conformance; unlike maps, extra elements in
// the claim array are a length mismatch and therefore rejected.
func arrayConforms(schema []vctypes.SchemaProperty, claim []vctypes.ClaimProperty) bool {
	if len(schema) != len(claim) {
		return false
	}
	for i := range schema {
		if !Property(schema[i], claim[i]) {
			return false
		}
	}
	return true
}
