package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var (
		configPath   string
		debounce     time.Duration
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-validate and re-synthesize on file changes",
		Long: `Watch monitors the config file and any extra paths (for example the
app/taskdef.json and app/appspec.yaml templates) and re-runs validate and
build on each change.

Examples:
    ecspipe watch -c dev.toml
    ecspipe watch -c dev.toml ./app -o template.json
    ecspipe watch --debounce 1s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args, watchOptions{
				configPath:   configPath,
				debounce:     debounce,
				outputFormat: outputFormat,
				outputFile:   outputFile,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Environment config file (TOML)")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format for build: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for build (default: stdout)")

	return cmd
}

type watchOptions struct {
	configPath   string
	debounce     time.Duration
	outputFormat string
	outputFile   string
}

func runWatch(paths []string, opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if opts.configPath != "" {
		// Watch the directory: editors replace files on save, which drops
		// a watch placed on the file itself.
		if err := watcher.Add(filepath.Dir(opts.configPath)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", opts.configPath, err)
		}
		fmt.Printf("Watching: %s\n", opts.configPath)
	}
	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		fmt.Printf("Watching: %s\n", path)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial validate/build...")
	runValidateAndBuild(opts)

	var deb debouncer
	defer deb.stop()
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !relevantChange(event, opts.configPath) {
				continue
			}

			// Debounce rapid changes.
			deb.trigger(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Printf("\nChange detected at %s\n", time.Now().Format("15:04:05"))
			runValidateAndBuild(opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch")
			return nil
		}
	}
}

// debouncer coalesces a burst of triggers into one deferred fire.
type debouncer struct {
	timer *time.Timer
}

func (d *debouncer) trigger(wait time.Duration, fire func()) {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(wait, fire)
}

func (d *debouncer) stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
}

// relevantChange filters events down to writes of files we care about.
func relevantChange(event fsnotify.Event, configPath string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if configPath != "" && filepath.Base(event.Name) == filepath.Base(configPath) {
		return true
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".toml", ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func runValidateAndBuild(opts watchOptions) {
	if err := runValidate(opts.configPath, "text"); err != nil {
		fmt.Fprintf(os.Stderr, "validate: %v\n", err)
		return
	}
	if err := runBuild(opts.configPath, opts.outputFormat, opts.outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "build: %v\n", err)
		return
	}
	if opts.outputFile != "" {
		fmt.Printf("Wrote %s\n", opts.outputFile)
	}
}
