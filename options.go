package mpool

import "github.com/lunfardo314/mpool/blocksource"

// InitOption configures Init's construction of G and M, the same
// functional-options shape metaflowys-go-libs/pool uses for its pool.Option:
// a closure over an unexported config struct, rather than a long
// positional-argument constructor.
type InitOption func(*initConfig)

type initConfig struct {
	multiSizes        []int
	autoFreeThreshold int64
	source            blocksource.Source
}

func defaultInitConfig() initConfig {
	return initConfig{
		multiSizes:        defaultMultiSizeClasses,
		autoFreeThreshold: AutoFreeNodeThreshold,
		source:            blocksource.Default,
	}
}

// WithMultiSizes overrides the size classes M is created with.
func WithMultiSizes(sizes ...int) InitOption {
	return func(c *initConfig) { c.multiSizes = sizes }
}

// WithAutoFreeThreshold overrides the process-wide occupation threshold a
// node's last free must meet or exceed before it is returned to the
// system rather than kept for reuse.
func WithAutoFreeThreshold(n int64) InitOption {
	return func(c *initConfig) { c.autoFreeThreshold = n }
}

// WithBlockSource overrides the source new pools acquire and release node
// blocks through. Default is blocksource.Default, a recycling source
// shared process-wide.
func WithBlockSource(s blocksource.Source) InitOption {
	return func(c *initConfig) { c.source = s }
}
