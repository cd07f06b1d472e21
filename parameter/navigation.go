package parameter

// Search Frontier Sizing
const (
	// NavFrontierCapacity is the initial heap/queue capacity, grows on demand
	NavFrontierCapacity = 256

	// NavBenchObstacleDensity is the default fraction of blocked cells in search-bench fields
	NavBenchObstacleDensity = 0.25
)
