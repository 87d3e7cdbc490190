// Package config loads the small set of tunables the governance engine
// needs before it can create a raffle or tally a vote: how far ahead of the
// current block to sample randomness, default seat counts, the default
// pass threshold, and default point values.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

// Config holds the recognized tunables. Loading it from disk is a
// convenience for an embedder's own CLI; the engine itself only needs the
// struct, not the file.
type Config struct {
	FutureBlockOffset                uint64  `toml:"future_block_offset"`
	DefaultTotalCountedSeats         int     `toml:"default_total_counted_seats"`
	DefaultMaxEarnerSeats            int     `toml:"default_max_earner_seats"`
	DefaultQualifiedMajorityThreshold float64 `toml:"default_qualified_majority_threshold"`
	CountedVotePoints                uint32  `toml:"counted_vote_points"`
	UncountedVotePoints              uint32  `toml:"uncounted_vote_points"`
}

// Default returns the reference defaults: a one-day block offset (assuming
// ~12s blocks), a 7-seat raffle with at most 5 earner seats, a
// two-thirds pass threshold, and 5/2 point weighting for counted/uncounted
// votes.
func Default() Config {
	return Config{
		FutureBlockOffset:                 7200,
		DefaultTotalCountedSeats:          7,
		DefaultMaxEarnerSeats:             5,
		DefaultQualifiedMajorityThreshold: 2.0 / 3.0,
		CountedVotePoints:                 5,
		UncountedVotePoints:               2,
	}
}

// Validate checks the recognized fields for internally consistent values.
func (c Config) Validate() error {
	const op = "Config.Validate"
	if c.DefaultTotalCountedSeats <= 0 {
		return domain.InvalidArgument(op, "default_total_counted_seats must be positive")
	}
	if c.DefaultMaxEarnerSeats < 0 || c.DefaultMaxEarnerSeats > c.DefaultTotalCountedSeats {
		return domain.InvalidArgument(op, "default_max_earner_seats must be between 0 and default_total_counted_seats")
	}
	if c.DefaultQualifiedMajorityThreshold <= 0 || c.DefaultQualifiedMajorityThreshold > 1 {
		return domain.InvalidArgument(op, "default_qualified_majority_threshold must be in (0, 1]")
	}
	return nil
}

// Load reads path as TOML, creating it with Default's values if it does not
// yet exist.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, domain.Persistence(op, "decoding %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func createDefault(path string) (*Config, error) {
	const op = "config.createDefault"
	cfg := Default()

	f, err := os.Create(path)
	if err != nil {
		return nil, domain.Persistence(op, "creating %s: %v", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, domain.Persistence(op, "writing %s: %v", path, err)
	}
	return &cfg, nil
}
