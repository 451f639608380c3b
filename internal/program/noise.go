package program

// noiseRate quantizes time for hash noise so flicker runs at a visible rate
// instead of changing every frame.
const noiseRate = 12.0

// hash01 derives a pseudo-random value in [0,1) from a fixture index and the
// frame time. It replaces a stateful generator so that two runs fed identical
// inputs produce bit-identical output. The mixer is the splitmix64 finalizer.
func hash01(index int, t float64) float64 {
	n := uint64(index+1)*0x9e3779b97f4a7c15 ^ uint64(int64(t*noiseRate))
	n ^= n >> 30
	n *= 0xbf58476d1ce4e5b9
	n ^= n >> 27
	n *= 0x94d049bb133111eb
	n ^= n >> 31
	return float64(n>>11) / (1 << 53)
}
