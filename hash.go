package cutgen

// tiebreakHash produces a deterministic, pool-size-dependent but otherwise
// pure ordering key for cover candidates that tie on both activity
// contribution and coefficient (see determineCover). It must depend only
// on its two integer arguments so that repeated runs against identical
// inputs are bit-identical (testable property 8, determinism).
//
// The mix is a splitmix64 step, the same inline constant-mixing idiom the
// reference corpus uses for ad-hoc hashing (see gopus's FNV-offset mixing
// in its speech-track demux) rather than reaching for a language-default
// map/hash iteration order.
func tiebreakHash(colIndex, poolSize int) uint64 {
	x := uint64(colIndex)*0x9E3779B97F4A7C15 + uint64(poolSize)*0xBF58476D1CE4E5B9 + 0x2545F4914F6CDD1D

	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31

	return x
}
