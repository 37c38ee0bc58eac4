package ecs

// Frame describes the frame currently being simulated.
type Frame struct {
	// Delta is the simulated time since the previous frame, in seconds.
	Delta float64
	// Elapsed is the sum of all deltas so far.
	Elapsed float64
	// Count is the number of frames advanced, starting at 1 for the first frame.
	Count uint64
}

func (f *Frame) advance(dt float64) {
	f.Delta = dt
	f.Elapsed += dt
	f.Count++
}
