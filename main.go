package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lribeiro/dexview/cache"
	"github.com/lribeiro/dexview/catalog"
	"github.com/lribeiro/dexview/client"
	"github.com/lribeiro/dexview/cmd"
	"github.com/lribeiro/dexview/config"
	"github.com/lribeiro/dexview/prefs"
	"github.com/lribeiro/dexview/tui"
	"github.com/lribeiro/dexview/ui"
)

func main() {
	// Parse command-line flags
	verbose := flag.Bool("v", false, "verbose mode - show detailed logs")
	flag.BoolVar(verbose, "verbose", false, "verbose mode - show detailed logs")
	configPath := flag.String("config", "", "path to config file")
	regionKey := flag.String("region", "", "starting region (kanto, johto, hoenn, sinnoh)")
	noCache := flag.Bool("no-cache", false, "disable the local cache")
	flag.Parse()

	logger := ui.InitLogger(os.Stderr, *verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Invalid config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	// Cache store
	var store *cache.Store
	if !*noCache {
		storage, err := cache.NewDirStorage(cfg.Cache.Dir, cfg.Cache.MaxBytes)
		if err != nil {
			logger.Warn("Cache unavailable, continuing without it", "dir", cfg.Cache.Dir, "error", err)
		} else {
			store = cache.New(storage, logger,
				cache.WithMaxAge(time.Duration(cfg.Cache.MaxAgeHours)*time.Hour),
				cache.WithMaxEntries(cfg.Cache.MaxEntries),
			)
		}
	}

	// Cache management subcommands run outside the TUI
	args := flag.Args()
	if len(args) > 0 && args[0] == "cache" {
		if store == nil {
			fmt.Fprintln(os.Stderr, "Cache is disabled")
			os.Exit(1)
		}
		cmd.RunCacheCommand(args[1:], store)
		return
	}

	prefsDir, err := os.UserConfigDir()
	if err != nil {
		prefsDir = "."
	}
	prefsMgr := prefs.NewManager(filepath.Join(prefsDir, "dexview", "prefs.json"))
	favorites := prefs.NewFavorites(filepath.Join(prefsDir, "dexview", "favorites.json"))
	saved := prefsMgr.Load()

	region := resolveRegion(*regionKey, saved.Region, logger)

	// While the TUI owns the terminal, logs go to a file (verbose) or
	// nowhere.
	tuiLogger := redirectLogs(*verbose, prefsDir)

	apiClient := client.NewClient(cfg.API.BaseURL, store, tuiLogger)
	notices := tui.NewNotices()
	coord := catalog.NewCoordinator(apiClient, notices, tuiLogger, region, catalog.Config{
		BatchSize:        cfg.Loader.BatchSize,
		PreloadBatchSize: cfg.Loader.PreloadBatchSize,
		PreloadDelay:     time.Duration(cfg.Loader.PreloadDelayMs) * time.Millisecond,
		AcceleratedDelay: time.Duration(cfg.Loader.AcceleratedDelayMs) * time.Millisecond,
		BusyRetry:        time.Duration(cfg.Loader.BusyRetryMs) * time.Millisecond,
		AcceleratedRetry: time.Duration(cfg.Loader.AcceleratedRetryMs) * time.Millisecond,
	})

	if saved.SortBy != "" {
		asc := true
		if saved.SortAscending != nil {
			asc = *saved.SortAscending
		}
		coord.SetSort(catalog.SortField(saved.SortBy), asc)
	}

	model := tui.NewModel(tui.Options{
		Logger:    tuiLogger,
		Client:    apiClient,
		Coord:     coord,
		Notices:   notices,
		Prefs:     prefsMgr,
		Favorites: favorites,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	coord.StopPreloading()
	if err != nil {
		logger.Error("TUI failed", "error", err)
		os.Exit(1)
	}

	if m, ok := finalModel.(tui.Model); ok && m.Err() != nil {
		logger.Error("Viewer exited with error", "error", m.Err())
		os.Exit(1)
	}

	// Persist the last view state for the next run.
	st := coord.State()
	saved.Region = st.Region.Key
	saved.SortBy = string(st.SortField)
	asc := st.SortAscending
	saved.SortAscending = &asc
	saved.LastSearch = st.Filters.Name
	if err := prefsMgr.Save(saved); err != nil {
		logger.Warn("Could not save preferences", "error", err)
	}
}

// resolveRegion picks the starting region: the flag wins, then the
// saved preference, then an interactive menu.
func resolveRegion(flagKey, savedKey string, logger *log.Logger) catalog.Region {
	if flagKey != "" {
		if r, ok := catalog.RegionByKey(flagKey); ok {
			return r
		}
		logger.Warn("Unknown region", "region", flagKey)
	}
	if savedKey != "" {
		if r, ok := catalog.RegionByKey(savedKey); ok {
			return r
		}
	}
	region, err := ui.SelectRegion(catalog.Regions)
	if err != nil {
		return catalog.DefaultRegion
	}
	return region
}

// redirectLogs returns a logger safe to use while the TUI is running.
func redirectLogs(verbose bool, dir string) *log.Logger {
	if !verbose {
		return ui.InitLogger(io.Discard, false)
	}
	if err := os.MkdirAll(filepath.Join(dir, "dexview"), 0755); err != nil {
		return ui.InitLogger(io.Discard, true)
	}
	f, err := os.OpenFile(filepath.Join(dir, "dexview", "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return ui.InitLogger(io.Discard, true)
	}
	return ui.InitLogger(f, true)
}
