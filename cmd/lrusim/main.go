// Command lrusim replays synthetic access traces against an LRU cache and
// reports hit ratio, evictions and per-operation latency.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/containerd/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCommand() *cobra.Command {
	cfg := defaultConfig()
	var configFile, logLevel, logFormat string

	cmd := &cobra.Command{
		Use:           "lrusim [OPTIONS]",
		Short:         "Replay a synthetic access trace against an LRU cache",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logrus.SetOutput(cmd.ErrOrStderr())
			if err := log.SetLevel(logLevel); err != nil {
				return err
			}
			if err := log.SetFormat(log.OutputFormat(logFormat)); err != nil {
				return err
			}

			effective := cfg
			if configFile != "" {
				effective = defaultConfig()
				if err := loadConfig(configFile, &effective); err != nil {
					return err
				}
				overrideFromFlags(cmd.Flags(), &effective, cfg)
				log.G(cmd.Context()).WithField("file", configFile).Debug("loaded config")
			}
			if err := effective.validate(); err != nil {
				return err
			}

			r, err := simulate(cmd.Context(), effective)
			if err != nil {
				return err
			}
			return r.print(cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "TOML configuration file")
	flags.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "Maximum number of cache entries")
	flags.StringVarP(&cfg.Operations, "operations", "n", cfg.Operations, "Number of operations to replay (e.g. 100k, 2M)")
	flags.Int64Var(&cfg.Keyspace, "keyspace", cfg.Keyspace, "Number of distinct keys in the trace")
	flags.StringVar(&cfg.Dist, "distribution", cfg.Dist, "Key distribution: rand, freq or scan")
	flags.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Number of concurrent workers")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed of the trace generator")
	flags.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "Time one operation out of this many")
	flags.StringVar(&cfg.Name, "name", cfg.Name, "Value of the cache metric label")
	flags.StringVarP(&logLevel, "log-level", "l", "info", `Set the logging level ("debug"|"info"|"warn"|"error"|"fatal")`)
	flags.StringVar(&logFormat, "log-format", string(log.TextFormat), `Set the logging format ("text"|"json")`)

	return cmd
}

// overrideFromFlags copies into dst every field whose flag was set on the
// command line, so explicit flags win over the config file.
func overrideFromFlags(flags *pflag.FlagSet, dst *config, src config) {
	overrides := map[string]func(){
		"capacity":     func() { dst.Capacity = src.Capacity },
		"operations":   func() { dst.Operations = src.Operations },
		"keyspace":     func() { dst.Keyspace = src.Keyspace },
		"distribution": func() { dst.Dist = src.Dist },
		"workers":      func() { dst.Workers = src.Workers },
		"seed":         func() { dst.Seed = src.Seed },
		"sample-rate":  func() { dst.SampleRate = src.SampleRate },
		"name":         func() { dst.Name = src.Name },
	}
	for name, apply := range overrides {
		if flags.Changed(name) {
			apply()
		}
	}
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.G(ctx).WithError(err).Error("lrusim failed")
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
