// bloomctl sizes and measures bloom filters from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"bloomset/internal/common"
	"bloomset/internal/evaluate"
	"bloomset/internal/filter"
)

var (
	paramsCommand = cli.Command{
		Action:    params,
		Name:      "params",
		Usage:     "Compute filter size and hash count",
		ArgsUsage: "",
		Flags:     filterFlags,
		Description: `The params command prints the bit-array size and hash count for the
configured expected element count and false positive rate, along with the
memory they occupy and the resulting theoretical false positive rate.`,
	}
	fprateCommand = cli.Command{
		Action:    fprate,
		Name:      "fprate",
		Usage:     "Measure the empirical false positive rate",
		ArgsUsage: "",
		Flags:     append(append([]cli.Flag{}, filterFlags...), evaluateFlags...),
		Description: `The fprate command builds a filter, inserts a set of member keys, probes
keys that were never inserted, and compares the observed false positive rate
to the theoretical one.`,
	}
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "",
		Flags:       append(append([]cli.Flag{}, filterFlags...), evaluateFlags...),
		Description: `The dumpconfig command shows configuration values.`,
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bloomctl"
	app.Usage = "size and measure bloom filters"
	app.Flags = []cli.Flag{configFileFlag}
	app.Commands = []cli.Command{paramsCommand, fprateCommand, dumpConfigCommand}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func params(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	size, k, err := cfg.Filter.params()
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "size=%d hash_count=%d bytes=%d\n", size, k, (size+7)/8)
	if cfg.Filter.Expected > 0 {
		expected := filter.TheoreticalFalsePositiveRate(uint64(size), uint32(k), cfg.Filter.Expected)
		fmt.Fprintf(w, "theoretical fp rate at n=%d: %s\n", cfg.Filter.Expected, common.FormatRate(expected))
	}
	return nil
}

func fprate(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	f, err := cfg.Filter.build()
	if err != nil {
		return err
	}

	start := time.Now()
	report, err := evaluate.FalsePositiveRate(context.Background(), f, cfg.Evaluate)
	if err != nil {
		return err
	}
	common.LogDuration(start, "inserted %d keys, probed %d with %d workers",
		report.Inserted, report.Probes, cfg.Evaluate.Workers)

	w := ctx.App.Writer
	fmt.Fprintf(w, "size=%d hash_count=%d hasher=%s\n", f.Size(), f.HashCount(), cfg.Filter.Hasher)
	fmt.Fprintf(w, "false positives: %d/%d\n", report.FalsePositives, report.Probes)
	fmt.Fprintf(w, "observed: %s expected: %s\n", common.FormatRate(report.Observed), common.FormatRate(report.Expected))
	return nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}
