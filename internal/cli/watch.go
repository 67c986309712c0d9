package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/ormgen/compiler"
)

// debounce groups bursts of file events into one run.
const debounce = 200 * time.Millisecond

// NewWatchCmd builds the `watch` command.
func NewWatchCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "watch [schema globs...]",
		Short: "Regenerate whenever a schema file changes",
		Long: `Run generate once, then again whenever a matched schema file is written.
Takes the same flags as generate. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			return watch(cmd.Context(), s, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	return cmd
}

// watch runs generate on start and on every change of a watched schema
// file. Runs are serialized: events that arrive during a run trigger
// exactly one further run.
func watch(ctx context.Context, s *Settings, w io.Writer) error {
	files, err := compiler.Expand(s.WorkDir, s.Inputs)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("ormgen: watch: %w", err)
	}
	defer watcher.Close()
	for _, dir := range watchDirs(files) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("ormgen: watch %s: %w", dir, err)
		}
	}

	report := func() {
		if err := run(ctx, s, w); err != nil && !errors.Is(err, ErrGenerateFailed) && ctx.Err() == nil {
			fmt.Fprintf(w, "%s %v\n", failColor.Sprint("FAIL"), err)
		}
	}
	report()

	trigger := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return pump(ctx, watcher, files, trigger)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-trigger:
				report()
			}
		}
	})
	return g.Wait()
}

// pump forwards relevant watcher events to trigger, debounced.
func pump(ctx context.Context, watcher *fsnotify.Watcher, files []string, trigger chan<- struct{}) error {
	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if relevant(ev, files) {
				timer = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("ormgen: watch: %w", err)
		case <-timer:
			timer = nil
			select {
			case trigger <- struct{}{}:
			default:
			}
		}
	}
}

// relevant reports whether ev changes the content of a watched file.
// Editors that replace files emit Create or Rename instead of Write.
func relevant(ev fsnotify.Event, files []string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(files, filepath.Clean(ev.Name))
}

// watchDirs returns the distinct parent directories of files. fsnotify
// watches directories so that replaced files stay observed.
func watchDirs(files []string) []string {
	var dirs []string
	for _, f := range files {
		if d := filepath.Dir(f); !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
