package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lribeiro/dexview/cache"
)

// RunCacheCommand handles all cache subcommands.
func RunCacheCommand(args []string, store *cache.Store) {
	if len(args) == 0 {
		printCacheUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "stats":
		handleCacheStats(store, args[1:])
	case "list":
		handleCacheList(store, args[1:])
	case "clear":
		handleCacheClear(store, args[1:])
	case "remove":
		handleCacheRemove(store, args[1:])
	case "prune":
		handleCachePrune(store, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown cache command: %s\n\n", args[0])
		printCacheUsage()
		os.Exit(1)
	}
}

func printCacheUsage() {
	fmt.Println("Cache Management Commands:")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  dexview cache stats           Show cache statistics")
	fmt.Println("  dexview cache list            List cached entries")
	fmt.Println("  dexview cache clear           Clear the entire cache")
	fmt.Println("  dexview cache remove <key>    Remove a specific entry")
	fmt.Println("  dexview cache prune --days N  Remove entries older than N days")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --json       Output in JSON format (stats, list)")
	fmt.Println("  --force, -f  Skip confirmation prompts")
	fmt.Println("  --dry-run    Preview changes without applying them")
	fmt.Println("  --days <N>   Age threshold in days (prune)")
}

func handleCacheStats(store *cache.Store, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	fs.Parse(args)

	stats := store.GetStats()

	if *jsonOutput {
		if err := printJSON(stats); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printHeader("Cache Statistics")
	fmt.Printf("Total Entries: %d\n", stats.TotalEntries)
	fmt.Printf("Total Size:    %s\n", formatSize(stats.TotalSize))
	if !stats.OldestEntry.IsZero() {
		fmt.Printf("Oldest Entry:  %s (%s)\n", formatDate(stats.OldestEntry), formatAge(stats.OldestEntry))
	}
	if !stats.NewestEntry.IsZero() {
		fmt.Printf("Newest Entry:  %s (%s)\n", formatDate(stats.NewestEntry), formatAge(stats.NewestEntry))
	}
	if stats.Disabled {
		fmt.Println("Status:        DISABLED (storage full)")
	}
}

func handleCacheList(store *cache.Store, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	fs.Parse(args)

	entries := store.Entries()
	if len(entries) == 0 {
		fmt.Println("Cache is empty")
		return
	}

	if *jsonOutput {
		if err := printJSON(map[string]any{"entries": entries, "total": len(entries)}); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printHeader("Cached Entries")
	for _, e := range entries {
		marker := " "
		if e.Expired {
			marker = "*"
		}
		fmt.Printf("%s %-60s %10s  %s\n", marker, truncateKey(e.Key, 60), formatSize(e.Size), formatAge(e.StoredAt))
	}
	fmt.Println()
	fmt.Printf("Total: %d entries (* = expired)\n", len(entries))
}

func handleCacheClear(store *cache.Store, args []string) {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	force := fs.Bool("force", false, "Skip confirmation")
	fs.BoolVar(force, "f", false, "Skip confirmation")
	fs.Parse(args)

	if !*force && !confirm("Clear the entire cache?") {
		fmt.Println("Aborted")
		return
	}

	store.Clear()
	fmt.Println("Cache cleared")
}

func handleCacheRemove(store *cache.Store, args []string) {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: dexview cache remove <key>")
		os.Exit(1)
	}

	key := fs.Arg(0)
	store.Remove(key)
	fmt.Printf("Removed %s\n", key)
}

func handleCachePrune(store *cache.Store, args []string) {
	fs := flag.NewFlagSet("prune", flag.ExitOnError)
	days := fs.Int("days", 7, "Age threshold in days")
	dryRun := fs.Bool("dry-run", false, "Preview changes without applying them")
	fs.Parse(args)

	removed := store.Prune(time.Duration(*days)*24*time.Hour, *dryRun)
	if *dryRun {
		fmt.Printf("Would remove %d entries older than %d days\n", removed, *days)
		return
	}
	fmt.Printf("Removed %d entries older than %d days\n", removed, *days)
}
