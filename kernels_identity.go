package fdl

// RunIdentityMirror executes the identity mirror kernel: writes the
// inverse permutation PID -> physical slot from s's current layout.
// identity is cleared to the sentinel first, so unassigned PIDs remain
// sentinel. Must run after reshuffle and before relocation, since
// relocation's target translation needs the *new* slots.
//
// Correctness here depends on PID uniqueness across s, an invariant the
// ingestion collaborator must supply: the GPU version of this kernel is a
// scatter (one point per particle, one write per PID), and without that
// uniqueness two particles could race to write the same texel.
func RunIdentityMirror(s *State, identity *IdentityMap) {
	identity.clear()
	for i := 0; i < s.Len(); i++ {
		identity.set(s.PID[i], int32(i))
	}
}
