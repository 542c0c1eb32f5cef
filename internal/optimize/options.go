package optimize

import (
	"github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"qtcount/internal/phasepoly"
)

// Method selects the phase-polynomial reduction run on every segment.
type Method string

const (
	MethodTOHPE    Method = "tohpe"
	MethodFastTODD Method = "fasttodd"
)

// DefaultCacheSize bounds the number of memoized segment reductions.
const DefaultCacheSize = 256

// Cache memoizes reduced tables keyed by method, width and rows. It is safe
// for concurrent use and may be shared between calls.
type Cache = lru.Cache[string, phasepoly.Table]

// NewCache returns a cache holding up to size reductions.
func NewCache(size int) *Cache {
	if size < 1 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, phasepoly.Table](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return c
}

// Options configures TCountOptimization.
type Options struct {
	Method Method
	// Workers bounds the segments reduced concurrently and the FastTODD
	// pair-scan goroutines.
	Workers int
	// Gadgetize replaces interior Hadamards with gadgets on fresh ancillas.
	Gadgetize bool
	// CleanAncillas lists qubits that start in |0>; a Toffoli targeting one
	// before any other gate touches it uses the cheaper clean decomposition.
	CleanAncillas []int
	Cache         *Cache
	CacheSize     int
	Logger        *zap.Logger
}

// DefaultOptions returns FastTODD with gadgetization on a single worker.
func DefaultOptions() Options {
	return Options{
		Method:    MethodFastTODD,
		Workers:   1,
		Gadgetize: true,
		CacheSize: DefaultCacheSize,
	}
}

func (o Options) withDefaults() Options {
	if o.Method == "" {
		o.Method = MethodFastTODD
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Cache == nil {
		o.Cache = NewCache(o.CacheSize)
	}
	return o
}
