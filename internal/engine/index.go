package engine

import (
	"sniff/internal/check"
	"sniff/internal/token"
)

// Index maps token kinds to the checks interested in them, in
// registration order.
type Index struct {
	insts  []check.Instance
	byKind [token.NumKinds][]int
}

// NewIndex registers the enabled instances.
func NewIndex(insts []check.Instance, enabled func(string) bool) *Index {
	ix := &Index{}
	for _, inst := range insts {
		if enabled != nil && !enabled(inst.Def.ID) {
			continue
		}
		i := len(ix.insts)
		ix.insts = append(ix.insts, inst)
		kinds := inst.Check.Kinds()
		if len(kinds) == 0 {
			ix.byKind[token.StartOfFile] = append(ix.byKind[token.StartOfFile], i)
			continue
		}
		var seen token.KindSet
		for _, k := range kinds {
			if !k.Valid() || seen.Has(k) {
				continue
			}
			seen = seen.With(k)
			ix.byKind[k] = append(ix.byKind[k], i)
		}
	}
	return ix
}

// For returns instance indices interested in k.
func (ix *Index) For(k token.Kind) []int {
	if !k.Valid() {
		return nil
	}
	return ix.byKind[k]
}

// Instances returns the registered instances.
func (ix *Index) Instances() []check.Instance { return ix.insts }

// Len returns the number of registered instances.
func (ix *Index) Len() int { return len(ix.insts) }
