package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/backbone81/durable-log/pkg/durablelog"
)

// fenceCmd represents the fence command.
var fenceCmd = &cobra.Command{
	Use:          "fence",
	Short:        "Demonstrates how a newer writer fences out an older one.",
	Long:         `Demonstrates how a newer writer fences out an older one on the same store.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFence(cmd.Context(), cmd)
	},
}

func runFence(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	store := durablelog.NewStore(durablelog.WithMaxAppendSize(cfg.Store.MaxAppendSize))
	options := append(cfg.Writer.LogOptions(), durablelog.WithLogger(logger))

	oldWriter := durablelog.New(store, slices.Concat(options, []durablelog.Option{durablelog.WithClientID("old-writer")})...)
	newWriter := durablelog.New(store, slices.Concat(options, []durablelog.Option{durablelog.WithClientID("new-writer")})...)
	defer func() {
		if err := errors.Join(oldWriter.Close(), newWriter.Close()); err != nil {
			fmt.Fprintln(out, err)
		}
	}()

	if err := oldWriter.Initialize(); err != nil {
		return err
	}
	epoch, err := oldWriter.Epoch()
	if err != nil {
		return err
	}
	address, err := oldWriter.Append(ctx, []byte("written by old writer"))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "old-writer initialized with epoch %d and appended at %d\n", epoch, address.Sequence())

	if err := newWriter.Initialize(); err != nil {
		return err
	}
	epoch, err = newWriter.Epoch()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "new-writer initialized with epoch %d\n", epoch)

	_, err = oldWriter.Append(ctx, []byte("written by old writer after fencing"))
	if !errors.Is(err, durablelog.ErrNotPrimary) {
		return fmt.Errorf("expected the old writer to be fenced out, got: %w", err)
	}
	fmt.Fprintf(out, "old-writer append rejected: %s\n", err)

	address, err = newWriter.Append(ctx, []byte("written by new writer"))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "new-writer appended at %d\n", address.Sequence())
	return nil
}

func init() {
	rootCmd.AddCommand(fenceCmd)
}
