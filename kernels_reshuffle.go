package fdl

// RunReshuffle executes the particle reshuffle kernel: gathers scratch's
// attribute arrays through atlas into cur, so that after this call cur
// holds the newly sorted particle layout. scratch and cur must be distinct
// States of equal length.
func RunReshuffle(scratch, cur *State, atlas *SortAtlas) {
	n := scratch.Len()
	for i := 0; i < n; i++ {
		src := atlas.Lookup(i)
		cur.Pos[i] = scratch.Pos[src]
		cur.SFC[i] = scratch.SFC[src]
		cur.Vel[i] = scratch.Vel[src]
		cur.PID[i] = scratch.PID[src]
		cur.Mass[i] = scratch.Mass[src]
		cur.Tint[i] = scratch.Tint[src]
	}
}
