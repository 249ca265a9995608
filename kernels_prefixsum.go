package fdl

// RunPrefixSum executes the CSR prefix-sum kernel in its three sub-stages
// (init, Hillis-Steele scan, finalize), rebuilding ptrNew from the old CSR
// and the sort atlas. ptrNew must have length n+1; ptrNew is fully
// overwritten except the final sentinel, which is always set to
// oldCSR.E().
func RunPrefixSum(oldCSR *CSR, atlas *SortAtlas, n int, ptrNew []int32) {
	counts := make([]int32, n)
	scanA := make([]int32, n)

	// Init: recover each new slot's old slot through the atlas and read its
	// edge count from the old CSR.
	for i := 0; i < n; i++ {
		pOld := atlas.Lookup(i)
		counts[i] = oldCSR.Ptr[pOld+1] - oldCSR.Ptr[pOld]
		scanA[i] = counts[i]
	}

	// Hillis-Steele inclusive scan: log2(n) passes, ping-ponging between two
	// buffers (kept explicit rather than collapsed into a single host-side
	// running sum, so this function's structure matches the parallel GPU
	// kernel it mirrors pass-for-pass).
	scanB := make([]int32, n)
	src, dst := scanA, scanB
	for offset := 1; offset < n; offset <<= 1 {
		for i := 0; i < n; i++ {
			if i >= offset {
				dst[i] = src[i] + src[i-offset]
			} else {
				dst[i] = src[i]
			}
		}
		src, dst = dst, src
	}
	inclusive := src

	// Finalize: exclusive start = inclusive - count, re-derived rather than
	// cached from the init stage - this avoids a separate count texture on
	// the GPU side, at the cost of one extra CSR lookup per slot.
	for i := 0; i < n; i++ {
		pOld := atlas.Lookup(i)
		count := oldCSR.Ptr[pOld+1] - oldCSR.Ptr[pOld]
		ptrNew[i] = inclusive[i] - count
	}
	ptrNew[n] = int32(oldCSR.E())
}
