package main

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	cli "gopkg.in/urfave/cli.v1"

	"bloomset/internal/evaluate"
	"bloomset/internal/filter"
	"bloomset/internal/hashing"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	expectedFlag = cli.Uint64Flag{
		Name:  "n",
		Usage: "Expected number of elements",
	}
	rateFlag = cli.Float64Flag{
		Name:  "p",
		Usage: "Target false positive rate",
	}
	sizeFlag = cli.Int64Flag{
		Name:  "size",
		Usage: "Explicit filter size in bits (overrides -n/-p together with -k)",
	}
	hashCountFlag = cli.IntFlag{
		Name:  "k",
		Usage: "Explicit hash count (overrides -n/-p together with -size)",
	}
	hasherFlag = cli.StringFlag{
		Name:  "hasher",
		Usage: fmt.Sprintf("Hashing strategy %v", hashing.Names),
	}
	seedFlag = cli.UintFlag{
		Name:  "seed",
		Usage: "Hash seed",
	}
	insertedFlag = cli.IntFlag{
		Name:  "inserted",
		Usage: "Keys inserted before probing",
	}
	probesFlag = cli.IntFlag{
		Name:  "probes",
		Usage: "Non-member keys probed",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "Concurrent probe workers",
	}

	filterFlags   = []cli.Flag{expectedFlag, rateFlag, sizeFlag, hashCountFlag, hasherFlag, seedFlag}
	evaluateFlags = []cli.Flag{insertedFlag, probesFlag, workersFlag}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		if unicode.IsUpper(rune(rt.Name()[0])) {
			return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
		}
		return fmt.Errorf("field '%s' is not defined", field)
	},
}

type filterConfig struct {
	Expected uint64
	Rate     float64
	// Size and HashCount, when both positive, bypass Expected and Rate.
	Size      int64
	HashCount int
	Hasher    string
	Seed      uint32
}

type bloomctlConfig struct {
	Filter   filterConfig
	Evaluate evaluate.Config
}

func defaultConfig() bloomctlConfig {
	return bloomctlConfig{
		Filter: filterConfig{
			Expected: uint64(evaluate.DefaultConfig.Inserted),
			Rate:     0.01,
			Hasher:   hashing.DoubleHashName,
			Seed:     filter.DefaultOptions.Seed,
		},
		Evaluate: evaluate.DefaultConfig,
	}
}

func loadConfig(file string, cfg *bloomctlConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig layers defaults, the config file, and command line flags.
func makeConfig(ctx *cli.Context) (bloomctlConfig, error) {
	cfg := defaultConfig()
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.IsSet(expectedFlag.Name) {
		cfg.Filter.Expected = ctx.Uint64(expectedFlag.Name)
	}
	if ctx.IsSet(rateFlag.Name) {
		cfg.Filter.Rate = ctx.Float64(rateFlag.Name)
	}
	if ctx.IsSet(sizeFlag.Name) {
		cfg.Filter.Size = ctx.Int64(sizeFlag.Name)
	}
	if ctx.IsSet(hashCountFlag.Name) {
		cfg.Filter.HashCount = ctx.Int(hashCountFlag.Name)
	}
	if ctx.IsSet(hasherFlag.Name) {
		cfg.Filter.Hasher = ctx.String(hasherFlag.Name)
	}
	if ctx.IsSet(seedFlag.Name) {
		seed := ctx.Uint(seedFlag.Name)
		if uint64(seed) > math.MaxUint32 {
			return cfg, fmt.Errorf("%w: seed %d out of range [0, %d]", filter.ErrInvalidConfiguration, seed, uint32(math.MaxUint32))
		}
		cfg.Filter.Seed = uint32(seed)
	}
	if ctx.IsSet(insertedFlag.Name) {
		cfg.Evaluate.Inserted = ctx.Int(insertedFlag.Name)
	}
	if ctx.IsSet(probesFlag.Name) {
		cfg.Evaluate.Probes = ctx.Int(probesFlag.Name)
	}
	if ctx.IsSet(workersFlag.Name) {
		cfg.Evaluate.Workers = ctx.Int(workersFlag.Name)
	}
	return cfg, nil
}

// params resolves the filter size and hash count the config describes.
func (c filterConfig) params() (int64, int, error) {
	if c.Size > 0 && c.HashCount > 0 {
		return c.Size, c.HashCount, nil
	}
	size, k, err := filter.OptimalParams(c.Expected, c.Rate)
	if err != nil {
		return 0, 0, err
	}
	return int64(size), int(k), nil
}

func (c filterConfig) build() (filter.Filter, error) {
	size, k, err := c.params()
	if err != nil {
		return nil, err
	}
	h, err := hashing.ByName(c.Hasher, c.Seed)
	if err != nil {
		return nil, err
	}
	return filter.NewBloomFilter(size, k, filter.WithHasher(h))
}
