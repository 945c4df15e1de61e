package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/xa0c/tally/internal/model"
	"github.com/xa0c/tally/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file_path> [level]",
	Short: "Re-run the analysis whenever the file changes",
	Long: `Watch a log file and print a fresh summary every time it changes.
Survives log rotation: when the file is replaced, tally reattaches to the
new one. Stop with Ctrl-C.

Examples:
  tally watch app.log
  tally watch app.log ERROR`,
	Args: checkArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	path := args[0]
	var level model.Level
	if len(args) == 2 {
		level, _ = model.ParseLevel(args[1])
	}

	// --- Set up context with graceful shutdown ---
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info().Msg("shutting down")
		cancel()
	}()

	// --- Initialize watcher ---
	w, err := watcher.New(path, logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	go w.Start(ctx)

	logger.Info().Str("path", w.Path()).Msg("watching file")

	// First report before any change arrives.
	if err := analyze(cmd, path, level); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Info().Str("op", ev.Op.String()).Msg("file changed, re-analyzing")
			// The file may be mid-rotation; keep watching on failure.
			if err := analyze(cmd, path, level); err != nil {
				logger.Error().Err(err).Msg("analysis failed")
			}
		}
	}
}
