package splat

// Default store parameters.
const (
	// DefaultCapacity is the number of splat slots allocated by NewStore.
	DefaultCapacity = 150_000

	// DefaultHistoryDepth is the number of strokes kept in the undo log.
	DefaultHistoryDepth = 256
)

// StoreOption configures a Store during creation.
// Use functional options to customize Store behavior.
//
// Example:
//
//	// Default capacity and undo depth
//	s := splat.NewStore()
//
//	// 300k slots, unbounded undo log
//	s := splat.NewStore(splat.WithCapacity(300_000), splat.WithHistoryDepth(0))
type StoreOption func(*storeOptions)

// storeOptions holds optional configuration for Store creation.
type storeOptions struct {
	capacity     int
	historyDepth int
}

// defaultStoreOptions returns the default store options.
func defaultStoreOptions() storeOptions {
	return storeOptions{
		capacity:     DefaultCapacity,
		historyDepth: DefaultHistoryDepth,
	}
}

// WithCapacity sets the fixed number of slots. The capacity is never
// resized after creation. Values below 1 are ignored.
func WithCapacity(n int) StoreOption {
	return func(o *storeOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithHistoryDepth bounds the undo log to n strokes. When the log is full
// the oldest stroke is discarded and can no longer be undone.
// n == 0 keeps every stroke (unbounded); negative values are ignored.
func WithHistoryDepth(n int) StoreOption {
	return func(o *storeOptions) {
		if n >= 0 {
			o.historyDepth = n
		}
	}
}
