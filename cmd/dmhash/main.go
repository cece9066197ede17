package main

import (
	"fmt"
	"os"
	"time"

	dirmerklehash "github.com/mattkeenan/dirmerklehash/pkg"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	// Handle help and version early
	if os.Args[1] == "--help" || os.Args[1] == "-h" || os.Args[1] == "help" {
		showHelp()
		return
	}

	if os.Args[1] == "--version" {
		fmt.Printf("dmhash %s\n", version)
		return
	}

	// Parse command line arguments
	args, err := parseArguments(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmhash: %v\n", err)
		os.Exit(1)
	}

	// Load configuration and apply command line overrides
	config, err := dirmerklehash.LoadConfig(args.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmhash: %v\n", err)
		os.Exit(1)
	}
	if err := config.ApplyOverrides(args.Overrides); err != nil {
		fmt.Fprintf(os.Stderr, "dmhash: %v\n", err)
		os.Exit(1)
	}

	verboseConfig := config.GetVerboseConfig()
	dirmerklehash.SetVerboseLevel(verboseConfig.Level)
	debug := verboseConfig.Debug
	if args.Debug != "" {
		debug = args.Debug
	}
	dirmerklehash.SetDebugFlags(debug)

	performance := config.GetPerformanceConfig()
	threshold, err := dirmerklehash.ParseHumanSize(performance.MmapThreshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmhash: invalid mmap_threshold: %v\n", err)
		os.Exit(1)
	}

	workers := performance.HashWorkers
	if args.Threads > 0 {
		workers = args.Threads
	}

	// Set up signal handling for graceful shutdown
	shutdownChan := setupSignalHandler()

	pool := dirmerklehash.NewWorkerPool(workers)
	walker := dirmerklehash.NewWalker(pool, dirmerklehash.WalkOptions{
		CollectResults: args.Verbose,
		MmapThreshold:  threshold,
	})

	start := time.Now()
	root, err := walker.Walk(shutdownChan, args.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmhash: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	if args.Verbose {
		if err := dirmerklehash.WriteResults(os.Stdout, walker.Results()); err != nil {
			fmt.Fprintf(os.Stderr, "dmhash: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Root hash: %s\n", root.Digest.Hex())
	fmt.Printf("Elapsed time: %s\n", elapsed)
}

func showUsage() {
	fmt.Fprintf(os.Stderr, "Usage: dmhash [options] <path>\n")
	fmt.Fprintf(os.Stderr, "Try 'dmhash --help' for more information.\n")
}

func showHelp() {
	fmt.Printf("dmhash - deterministic Merkle tree hashing for files and directories\n\n")
	fmt.Printf("Usage: dmhash [options] <path>\n\n")

	fmt.Printf("ARGUMENTS:\n")
	fmt.Printf("  <path>            File, symlink, or directory to hash\n\n")

	fmt.Printf("OPTIONS:\n")
	fmt.Printf("  -t, --threads N   Number of parallel hash workers (default: CPU count)\n")
	fmt.Printf("  -v, --verbose     Print one '<KIND> <path> -> <hash>' line per entry\n")
	fmt.Printf("  --config FILE     Load configuration from FILE\n")
	fmt.Printf("  --set KEY:VALUE   Override a config value (repeatable)\n")
	fmt.Printf("  --debug FLAGS     Enable debug flags (comma-separated: walk,hash)\n")
	fmt.Printf("  --version         Show version\n")
	fmt.Printf("  -h, --help        Show this help\n\n")

	fmt.Printf("OUTPUT:\n")
	fmt.Printf("  The root hash line 'Root hash: <64-char hex>' followed by a timing\n")
	fmt.Printf("  line. With --verbose, per-entry lines are printed first in path order.\n\n")

	fmt.Printf("EXIT STATUS:\n")
	fmt.Printf("  0  digest produced\n")
	fmt.Printf("  1  root path missing or an I/O error occurred during traversal\n")
}
