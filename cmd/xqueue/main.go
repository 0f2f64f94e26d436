// Command xqueue runs a consumer pool with the built-in jobs and provides
// producer and inspection helpers.
//
// Subcommands:
//
//	run      start the consumer pool and status server
//	enqueue  push a job onto a queue backlog
//	stats    print queue counters
//	keys     print the backend keys derived for every queue
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/viant/xqueue"
	"github.com/viant/xqueue/internal/logging"
	"github.com/viant/xqueue/service/backend"
	"github.com/viant/xqueue/service/backend/memory"
)

type rootOptions struct {
	configURL string
	backend   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "xqueue",
		Short:         "xqueue: Redis backlog consumer pool",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&opts.configURL, "config", "c", "", "YAML config URL, e.g. file:///etc/xqueue.yaml")
	root.PersistentFlags().StringVar(&opts.backend, "backend", string(backend.VendorRedis), "backend: redis or memory")
	root.AddCommand(
		runCmd(opts),
		enqueueCmd(opts),
		statsCmd(opts),
		keysCmd(opts),
	)
	return root
}

// newService loads the configuration and builds a pool with the built-in jobs.
func newService(ctx context.Context, opts *rootOptions, options ...xqueue.Option) (*xqueue.Service, error) {
	config, err := xqueue.LoadConfig(ctx, opts.configURL)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(config.Log.Level), config.Log.Format)
	slog.SetDefault(logger)
	options = append([]xqueue.Option{
		xqueue.WithConfig(config),
		xqueue.WithLogger(logger),
		xqueue.WithBuiltinJobs(),
	}, options...)
	switch backend.Vendor(opts.backend) {
	case backend.VendorRedis:
	case backend.VendorMemory:
		options = append(options, xqueue.WithDialer(memory.New()))
	default:
		return nil, fmt.Errorf("unsupported backend: %v", opts.backend)
	}
	return xqueue.New(options...)
}

func runCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the consumer pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			srv, err := newService(ctx, opts)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
}

func enqueueCmd(opts *rootOptions) *cobra.Command {
	var rawArgs string
	cmd := &cobra.Command{
		Use:   "enqueue <queue> <job>",
		Short: "Push a job onto a queue backlog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobArgs := map[string]interface{}{}
			if rawArgs != "" {
				if err := json.Unmarshal([]byte(rawArgs), &jobArgs); err != nil {
					return fmt.Errorf("invalid --args: %w", err)
				}
			}
			srv, err := newService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err = srv.Enqueue(cmd.Context(), args[0], args[1], jobArgs); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "enqueued %v on %v\n", args[1], args[0])
			return err
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "", `job args as a JSON object, e.g. {"url":"https://example.com"}`)
	return cmd
}

func statsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print queue counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := newService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			snapshots, err := srv.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd, snapshots)
		},
	}
}

func keysCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the backend keys of every queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := newService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			ret := map[string]interface{}{}
			for _, suffix := range srv.Plan().Suffixes() {
				keys, _ := srv.Keys().Lookup(suffix)
				ret[suffix] = keys
			}
			return writeJSON(cmd, ret)
		},
	}
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
