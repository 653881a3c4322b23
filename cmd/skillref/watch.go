package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jingkaihe/skillref/pkg/logger"
	"github.com/jingkaihe/skillref/pkg/presenter"
	"github.com/jingkaihe/skillref/pkg/skills"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// WatchConfig holds configuration for the watch command
type WatchConfig struct {
	DebounceTime int
}

// NewWatchConfig creates a new WatchConfig with default values
func NewWatchConfig() *WatchConfig {
	return &WatchConfig{
		DebounceTime: 200,
	}
}

// Validate validates the WatchConfig and returns an error if invalid
func (c *WatchConfig) Validate() error {
	if c.DebounceTime < 0 {
		return errors.Errorf("debounce time cannot be negative: %d", c.DebounceTime)
	}
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch <skill>",
	Short: "Follow how a skill reference resolves as the tiers change",
	Long: `Print the qualified form of a skill reference, then print it again every
time adding, removing or renaming skill directories changes the resolution.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getWatchConfigFromFlags(cmd)
		if err := config.Validate(); err != nil {
			presenter.Error(err, "Invalid configuration")
			os.Exit(1)
		}

		resolver := newResolver(cmd.Context())
		if err := runWatch(cmd.Context(), resolver, args[0], config, os.Stdout); err != nil {
			presenter.Error(err, "Failed to watch skill tiers")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewWatchConfig()
	watchCmd.Flags().IntP("debounce", "d", defaults.DebounceTime, "Debounce time in milliseconds for file change events")
	rootCmd.AddCommand(watchCmd)
}

func getWatchConfigFromFlags(cmd *cobra.Command) *WatchConfig {
	config := NewWatchConfig()
	if debounceTime, err := cmd.Flags().GetInt("debounce"); err == nil {
		config.DebounceTime = debounceTime
	}
	return config
}

// resolutionTracker remembers the last qualified form of one reference
type resolutionTracker struct {
	resolver *skills.Resolver
	skill    string
	last     string
	started  bool
}

func newResolutionTracker(r *skills.Resolver, skill string) *resolutionTracker {
	return &resolutionTracker{resolver: r, skill: skill}
}

// check re-resolves the reference and reports whether the result differs
// from the previous check. The first check always reports a change.
func (t *resolutionTracker) check(ctx context.Context) (string, bool) {
	qualified, _ := t.resolver.QualifyName(ctx, t.skill)
	changed := !t.started || qualified != t.last
	t.started = true
	t.last = qualified
	return qualified, changed
}

// watchPaths lists the directories whose entries can change a resolution:
// each tier root, the tier's skills directory and the directories between.
func watchPaths(sources []skills.Source) []string {
	var paths []string
	seen := make(map[string]bool)

	for _, source := range sources {
		dir := filepath.Clean(source.Dir())
		root := filepath.Clean(source.Root)
		for {
			if !seen[dir] {
				seen[dir] = true
				paths = append(paths, dir)
			}
			if dir == root {
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return paths
}

func addWatches(watcher *fsnotify.Watcher, paths []string) {
	for _, path := range paths {
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			continue
		}
		// Adding an already watched path is a no-op
		if err := watcher.Add(path); err != nil {
			logger.G(context.Background()).WithError(err).WithField("path", path).Debug("failed to watch directory")
		}
	}
}

func runWatch(ctx context.Context, r *skills.Resolver, skill string, config *WatchConfig, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	paths := watchPaths(r.Sources())
	addWatches(watcher, paths)

	tracker := newResolutionTracker(r, skill)
	report := func() {
		if qualified, changed := tracker.check(ctx); changed {
			fmt.Fprintln(w, qualified)
		}
	}
	report()

	presenter.Info(fmt.Sprintf("Watching %d tier directories for changes to '%s'", len(watcher.WatchList()), skill))

	debounce := time.Duration(config.DebounceTime) * time.Millisecond
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.G(ctx).WithField("event", event.String()).Debug("tier directory changed")
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.G(ctx).WithError(err).Warn("file watcher error")
		case <-timer.C:
			// Newly created tier directories need their own watch
			addWatches(watcher, paths)
			report()
		}
	}
}
