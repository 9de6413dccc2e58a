package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/backbone81/durable-log/pkg/durablelog"
)

var benchMetrics bool

// benchCmd represents the bench command.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Appends entries through a sequence of competing writers and verifies the result.",
	Long: `Appends entries through a sequence of competing writers and verifies the result.

Every writer steals the write lock from its predecessor, appends the configured number of entries and
closes again. Afterward the whole log is read back and checked for contiguous addresses.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := prometheus.NewRegistry()
		if err := durablelog.RegisterMetrics(registry); err != nil {
			return err
		}
		if err := runBench(cmd.Context(), cmd.OutOrStdout()); err != nil {
			return err
		}
		if benchMetrics {
			return dumpMetrics(cmd.OutOrStdout(), registry)
		}
		return nil
	},
}

func runBench(ctx context.Context, out io.Writer) error {
	store := durablelog.NewStore(durablelog.WithMaxAppendSize(cfg.Store.MaxAppendSize))
	payload := make([]byte, cfg.Bench.PayloadSize)

	start := time.Now()
	for i := range cfg.Bench.Writers {
		if err := runBenchWriter(ctx, store, fmt.Sprintf("writer-%d", i), payload); err != nil {
			return err
		}
	}
	duration := time.Since(start)

	entries, err := verifyStore(store)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Writers:        %d\n", cfg.Bench.Writers)
	fmt.Fprintf(out, "Entries:        %d\n", entries)
	fmt.Fprintf(out, "Payload Size:   %d bytes\n", cfg.Bench.PayloadSize)
	fmt.Fprintf(out, "Delay Policy:   %s\n", cfg.Writer.DelayPolicy)
	fmt.Fprintf(out, "Duration:       %s\n", duration)
	fmt.Fprintf(out, "Appends/Second: %.0f\n", float64(entries)/duration.Seconds())
	return nil
}

func runBenchWriter(ctx context.Context, store *durablelog.Store, clientID string, payload []byte) (err error) {
	writer := durablelog.New(store, append(cfg.Writer.LogOptions(), durablelog.WithClientID(clientID), durablelog.WithLogger(logger))...)
	defer func() {
		err = errors.Join(err, writer.Close())
	}()
	if err := writer.Initialize(); err != nil {
		return err
	}

	futures := make([]*durablelog.Future, 0, cfg.Bench.Appends)
	for range cfg.Bench.Appends {
		future, err := writer.AppendAsync(payload)
		if err != nil {
			return err
		}
		futures = append(futures, future)
	}

	var previous durablelog.LogAddress
	for i, future := range futures {
		address, err := future.Wait(ctx)
		if err != nil {
			return fmt.Errorf("append %d of %s: %w", i, clientID, err)
		}
		if i > 0 && address.Compare(previous) <= 0 {
			return fmt.Errorf("append %d of %s at %s is not after %s", i, clientID, address, previous)
		}
		previous = address
	}
	logger.Info("Writer finished.", "clientId", clientID, "appends", len(futures))
	return nil
}

// verifyStore reads the whole store with a fresh writer and checks that all addresses are contiguous.
func verifyStore(store *durablelog.Store) (int, error) {
	verifier := durablelog.New(store, durablelog.WithLogger(logger))
	if err := verifier.Initialize(); err != nil {
		return 0, err
	}
	defer func() {
		_ = verifier.Close()
	}()

	reader, err := verifier.Read()
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = reader.Close()
	}()

	var (
		count    int
		expected int64
	)
	for reader.Next() {
		item := reader.Value()
		if item.Address().Sequence() != expected {
			return 0, fmt.Errorf("expected entry at %d but found %s", expected, item)
		}
		expected += int64(item.Length())
		count++
	}
	return count, nil
}

func dumpMetrics(out io.Writer, registry *prometheus.Registry) error {
	metricFamilies, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, metricFamily := range metricFamilies {
		if _, err := expfmt.MetricFamilyToText(out, metricFamily); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().BoolVarP(
		&benchMetrics,
		"metrics",
		"m",
		false,
		"Print the prometheus metrics after the run.",
	)
}
