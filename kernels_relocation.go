package fdl

// maxCoarseWalk bounds the linear walk forward from a coarse-map guess: the
// stride a coarse slot spans guarantees at most stride iterations, so a
// small constant safely caps the worst case.
const maxCoarseWalk = 256

// RunRelocation executes the edge relocation kernel, rewriting every entry
// of storeNew from the old edge store, translating
// each target's old-physical-slot -> PID -> new-physical-slot. cm is the
// coarse map built from ptrNew by RunCoarseMap; identity must already
// reflect the new layout (i.e. RunIdentityMirror must have run this tick).
func RunRelocation(oldCSR *CSR, ptrNew []int32, cm []int32, atlas *SortAtlas, oldState *State, identity *IdentityMap, storeNew []int32) {
	stride := 0
	if len(cm) > 0 && len(storeNew) > 0 {
		stride = (len(storeNew) + len(cm) - 1) / len(cm)
		if stride == 0 {
			stride = 1
		}
	}

	for eNew := 0; eNew < len(storeNew); eNew++ {
		p := 0
		if stride > 0 {
			p = int(cm[eNew/stride])
		}
		// The stride above is re-derived from the slice lengths and can be
		// smaller than the one cm was built with, so the guess may land past
		// eNew's owner; step back until it no longer does.
		for p > 0 && int(ptrNew[p]) > eNew {
			p--
		}
		for walk := 0; walk < maxCoarseWalk && int(ptrNew[p+1]) <= eNew; walk++ {
			p++
		}

		l := int32(eNew) - ptrNew[p]
		pOld := atlas.Lookup(p)
		eOld := oldCSR.Ptr[pOld] + l

		tOld := oldCSR.Store[eOld]
		if tOld < 0 {
			storeNew[eNew] = NoEdge
			continue
		}

		pid := oldState.PID[tOld]
		storeNew[eNew] = identity.Get(pid)
	}
}
