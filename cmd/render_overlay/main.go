// Command render_overlay renders the translated PDF for a job: page rasters
// become page backgrounds and approved regions are overlaid with their
// translated text. Writes translated.pdf (or translated_debug.pdf) and
// overlay_report.json into the job directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"image-translator/internal/config"
	"image-translator/internal/job"
	"image-translator/internal/logger"
	"image-translator/internal/overlay"
)

func main() {
	var (
		jobID      = flag.String("job", "", "job id under the storage root (required)")
		storageDir = flag.String("storage", "", "storage root (default from config / STORAGE_DIR)")
		scopeFlag  = flag.String("scope", "", "replacement scope: headings, safe or all (default from config)")
		dpiFlag    = flag.Int("dpi", 0, "raster dpi of the page images (default from config)")
		debug      = flag.Bool("debug", false, "outline regions instead of covering them")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	logCfg := logger.DefaultConfig()
	if *verbose {
		logCfg.Level = logger.LevelDebug
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	if *jobID == "" {
		fmt.Fprintln(os.Stderr, "Usage: render_overlay -job <id> [-scope headings|safe|all] [-dpi N] [-debug]")
		os.Exit(2)
	}

	if err := run(*jobID, *storageDir, *scopeFlag, *dpiFlag, *debug); err != nil {
		logger.Error("render failed", err, logger.String("job", *jobID))
		os.Exit(1)
	}
}

func run(jobID, storageDir, scopeStr string, dpi int, debug bool) error {
	mgr, err := config.NewManager("")
	if err != nil {
		return err
	}
	if err := mgr.Load(); err != nil {
		return err
	}

	if storageDir == "" {
		storageDir = mgr.GetStorageDir()
	}
	if scopeStr == "" {
		scopeStr = mgr.GetScope()
	}
	if dpi == 0 {
		dpi = mgr.GetDPI()
	}

	// Scope and dpi are validated before any page work starts.
	scope, err := overlay.ParseScope(scopeStr)
	if err != nil {
		return err
	}
	pipeline, err := overlay.NewPipeline(overlay.DefaultPolicy(), dpi)
	if err != nil {
		return err
	}

	store, err := job.NewStorage(storageDir)
	if err != nil {
		return err
	}
	doc, err := store.LoadVision(jobID)
	if err != nil {
		return err
	}
	pages := doc.PageRegions()
	if len(pages) == 0 {
		return fmt.Errorf("job %s: vision document has no pages", jobID)
	}

	logger.Info("rendering overlay",
		logger.String("job", jobID),
		logger.String("scope", string(scope)),
		logger.Int("dpi", dpi),
		logger.Int("pages", len(pages)),
		logger.Bool("debug", debug))

	pdfBytes, rep, renderErr := pipeline.Render(context.Background(), store.Pages(jobID), pages, scope, debug)

	// The report is written even when rendering fails partway.
	if err := store.WriteReport(jobID, rep); err != nil {
		if renderErr != nil {
			return renderErr
		}
		return err
	}
	if renderErr != nil {
		return renderErr
	}

	outPath, err := store.WriteOutput(jobID, pdfBytes, debug)
	if err != nil {
		return err
	}
	if err := job.VerifyOutput(outPath, len(pages)); err != nil {
		return err
	}

	fmt.Printf("Output:  %s\n", outPath)
	fmt.Printf("Blocks:  %d total, %d replaced, %d skipped\n",
		rep.TotalBlocks, rep.ReplacedBlocks, rep.SkippedBlocks)
	return nil
}
