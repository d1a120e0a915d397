// SPDX-License-Identifier: MIT
//
// options.go: functional options for Build.
//
// Contract:
//   - Options mutate a private buildConfig; defaults are resolved in newBuildConfig.
//   - Option constructors panic on meaningless input (programmer error);
//     Build itself never panics.
//   - There is no package-level RNG. Randomness must come from WithRand or WithSeed.

package machine

import "math/rand"

// Option customizes Build.
type Option func(*buildConfig)

// buildConfig is resolved once per Build call and passed by value.
type buildConfig struct {
	// rng drives every random choice; nil means Build refuses to run.
	rng *rand.Rand
}

func newBuildConfig(opts ...Option) buildConfig {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithRand threads an existing random source through Build.
// Sharing one *rand.Rand across several Build calls yields a reproducible
// sequence of instances for a fixed seed and call order.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("machine: WithRand(nil)")
	}
	return func(c *buildConfig) {
		c.rng = r
	}
}

// WithSeed creates a fresh *rand.Rand seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *buildConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}
