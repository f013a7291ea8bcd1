package filter

import "bloomset/internal/hashing"

type Options struct {
	// Hasher overrides the strategy built from Seed when non-nil.
	Hasher hashing.Hasher
	Seed   uint32
}

var DefaultOptions = Options{
	Seed: 0,
}

type Option func(*Options)

func WithHasher(h hashing.Hasher) Option {
	return func(o *Options) {
		o.Hasher = h
	}
}

func WithSeed(seed uint32) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

func buildOptions(optFns []Option) Options {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Hasher == nil {
		opts.Hasher = hashing.NewDoubleHash(opts.Seed)
	}
	return opts
}
