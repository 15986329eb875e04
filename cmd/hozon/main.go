package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/LuMiSxh/hozon/internal/config"
	"github.com/LuMiSxh/hozon/internal/convert"
	"github.com/LuMiSxh/hozon/internal/generate"
)

func main() {
	// Command line flags
	var (
		sourceFlag      = flag.String("source", "", "Source directory containing chapter folders")
		targetFlag      = flag.String("target", "", "Target directory for generated volumes")
		titleFlag       = flag.String("title", "", "Title of the work")
		formatFlag      = flag.String("format", "", "Output format: cbz or epub")
		strategyFlag    = flag.String("strategy", "", "Grouping strategy: manual, name, image, flat")
		depthFlag       = flag.String("depth", "", "Collection depth: deep or shallow")
		volumesFlag     = flag.String("volumes", "", "Comma-separated chapters-per-volume counts for manual grouping")
		separatorFlag   = flag.String("separator", "", "Separator between title and volume number in filenames")
		directionFlag   = flag.String("direction", "", "Reading direction for EPUB: ltr or rtl")
		metadataFlag    = flag.String("metadata", "", "Path to a YAML metadata file")
		coverFlag       = flag.String("cover", "", "Path to an explicit cover image")
		configFlag      = flag.String("config", "", "Path to config file")
		sensitivityFlag = flag.Int("sensitivity", -1, "Grayscale detection sensitivity (0-100)")
		analyzeFlag     = flag.Bool("analyze", false, "Analyze the source tree without writing output")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *sourceFlag == "" && flag.NArg() == 0 {
		fmt.Println("Hozon - Package page scans into CBZ/EPUB volumes")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  hozon -source <dir> -target <dir> -title <name> [options]")
		fmt.Println("  hozon <source-dir> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: hozon-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			logger.Error("loading config", "path", *configFlag, "error", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *sourceFlag != "" {
		settings.SourcePath = *sourceFlag
	} else if flag.NArg() > 0 {
		settings.SourcePath = flag.Arg(0)
	}
	if *targetFlag != "" {
		settings.TargetPath = *targetFlag
	}
	if *titleFlag != "" {
		settings.Metadata.Title = *titleFlag
	}
	if *formatFlag != "" {
		settings.OutputFormat = *formatFlag
	}
	if *strategyFlag != "" {
		settings.GroupingStrategy = *strategyFlag
	}
	if *depthFlag != "" {
		settings.CollectionDepth = *depthFlag
	}
	if *separatorFlag != "" {
		settings.VolumeSeparator = *separatorFlag
	}
	if *directionFlag != "" {
		settings.ReadingDirection = *directionFlag
	}
	if *sensitivityFlag >= 0 {
		settings.Sensitivity = *sensitivityFlag
	}
	if *volumesFlag != "" {
		sizes, err := parseVolumeSizes(*volumesFlag)
		if err != nil {
			logger.Error("parsing -volumes", "error", err)
			os.Exit(1)
		}
		settings.VolumeSizes = sizes
	}
	if *metadataFlag != "" {
		meta, err := config.LoadMetadata(*metadataFlag)
		if err != nil {
			logger.Error("loading metadata", "path", *metadataFlag, "error", err)
			os.Exit(1)
		}
		if settings.Metadata.Title != "" && meta.Title == "" {
			meta.Title = settings.Metadata.Title
		}
		settings.Metadata = meta
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager, err := convert.NewManager(settings, func(event convert.ProgressEvent) {
		if event.Level == convert.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case convert.LevelError:
			prefix = "❌ "
		case convert.LevelWarning:
			prefix = "⚠️  "
		case convert.LevelSuccess:
			prefix = "✅ "
		case convert.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})
	if err != nil {
		logger.Error("invalid settings", "error", err)
		os.Exit(1)
	}

	if *coverFlag != "" {
		manager.UseCovers(generate.CoverPolicy{Single: *coverFlag})
	}

	fmt.Println("📚 Hozon")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if *analyzeFlag {
		content, err := manager.Analyze(ctx)
		if err != nil {
			logger.Error("analysis failed", "error", err)
			os.Exit(1)
		}
		fmt.Println()
		fmt.Printf("✨ Analysis complete: %d chapters, %d findings\n", len(content.Chapters), len(content.Report.Findings))
		return
	}

	paths, err := manager.Convert(ctx)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nConversion cancelled.")
			os.Exit(130)
		}
		logger.Error("conversion failed", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Wrote %d volume(s):\n", len(paths))
	for _, path := range paths {
		fmt.Printf("   %s\n", path)
	}
}

func parseVolumeSizes(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid volume size %q", part)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
