package ip2location

// LoadMode selects how Open brings the database file into memory.
type LoadMode int

const (
	// LoadMapped memory-maps the file. It falls back to LoadMemory when the
	// platform cannot map it.
	LoadMapped LoadMode = iota
	// LoadMemory reads the whole file into the heap.
	LoadMemory
)

func (m LoadMode) String() string {
	switch m {
	case LoadMapped:
		return "mmap"
	case LoadMemory:
		return "memory"
	}
	return "unknown"
}

// options defines all configuration options for a DB.
type options struct {
	useIndex bool     // Narrow searches with the index tables when present
	loadMode LoadMode // How Open loads the file
}

// Option is a function that configures the DB options.
type Option func(*options)

// WithoutIndex makes lookups ignore the index tables and binary search the
// whole range table. Results are identical, only slower.
func WithoutIndex() Option {
	return func(o *options) {
		o.useIndex = false
	}
}

// WithLoadMode sets how Open loads the database file.
func WithLoadMode(mode LoadMode) Option {
	return func(o *options) {
		o.loadMode = mode
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		useIndex: true,
		loadMode: LoadMapped,
	}
}
