package dedupe

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithCapacity preallocates room for n keys.
func WithCapacity(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.capacity = n
		}
	}
}

// WithCaseFolding treats keys that differ only in case as equal.
func WithCaseFolding() Option {
	return func(d *inMemoryDeduper) {
		d.fold = true
	}
}
