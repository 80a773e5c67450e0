// Command analyze_pages sends a job's page images to a multimodal model and
// stores the returned region analysis as vision.json in the job directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"image-translator/internal/config"
	"image-translator/internal/job"
	"image-translator/internal/logger"
	"image-translator/internal/vision"
)

func main() {
	var (
		jobID      = flag.String("job", "", "job id under the storage root (required)")
		storageDir = flag.String("storage", "", "storage root (default from config / STORAGE_DIR)")
		lang       = flag.String("lang", "", "target language for replacement text (default from config)")
		model      = flag.String("model", "", "multimodal model name (default from config)")
		timeout    = flag.Duration("timeout", 5*time.Minute, "model call timeout")
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
		fmt.Fprintln(os.Stderr, "Usage: analyze_pages -job <id> [-lang English] [-model gpt-4o]")
		os.Exit(2)
	}

	if err := run(*jobID, *storageDir, *lang, *model, *timeout); err != nil {
		logger.Error("analysis failed", err, logger.String("job", *jobID))
		os.Exit(1)
	}
}

func run(jobID, storageDir, lang, model string, timeout time.Duration) error {
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
	if lang == "" {
		lang = mgr.GetTargetLanguage()
	}
	if model == "" {
		model = mgr.GetModel()
	}
	apiKey := mgr.GetAPIKey()
	if apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured; set %s or edit %s",
			config.EnvOpenAIAPIKey, mgr.GetConfigPath())
	}

	store, err := job.NewStorage(storageDir)
	if err != nil {
		return err
	}

	src := store.Pages(jobID)
	count := src.Count()
	if count == 0 {
		return fmt.Errorf("job %s: no page images in %s", jobID, store.PagesDir(jobID))
	}

	images := make([][]byte, 0, count)
	for n := 1; n <= count; n++ {
		pg, err := src.Page(n)
		if err != nil {
			return fmt.Errorf("load page %d: %w", n, err)
		}
		images = append(images, pg.Data)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := vision.NewClient(ctx, vision.ClientConfig{
		APIKey:         apiKey,
		BaseURL:        mgr.GetBaseURL(),
		Model:          model,
		TargetLanguage: lang,
	})
	if err != nil {
		return err
	}

	logger.Info("analyzing pages",
		logger.String("job", jobID),
		logger.Int("pages", count),
		logger.String("model", model),
		logger.String("lang", lang))

	doc, err := client.AnalyzePages(ctx, images)
	if err != nil {
		return err
	}
	if err := store.SaveVision(jobID, doc); err != nil {
		return err
	}

	blocks := 0
	for _, p := range doc.Pages {
		blocks += len(p.Blocks)
	}
	fmt.Printf("Analyzed %d pages, %d blocks -> %s\n",
		len(doc.Pages), blocks, store.JobDir(jobID))
	return nil
}
