// Package job manages the on-disk layout of a translation job: page rasters,
// the vision analysis document, the rendered output PDF and the overlay
// report.
package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"image-translator/internal/overlay"
	"image-translator/internal/raster"
	"image-translator/internal/vision"
)

const (
	pagesDirName   = "pages"
	visionFileName = "vision.json"
	reportFileName = "overlay_report.json"
	outputBaseName = "translated"
)

// Storage resolves job artifacts under a root directory. Layout:
//
//	<root>/<job-id>/pages/page_<n>.png
//	<root>/<job-id>/vision.json
//	<root>/<job-id>/overlay_report.json
//	<root>/<job-id>/translated.pdf (or translated_debug.pdf)
type Storage struct {
	root string
}

// NewStorage opens a storage root, creating it if needed.
func NewStorage(root string) (*Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is empty")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Storage{root: root}, nil
}

func (s *Storage) Root() string { return s.root }

// JobDir returns the directory of a job without creating it.
func (s *Storage) JobDir(id string) string {
	return filepath.Join(s.root, id)
}

// EnsureJob creates the job directory tree and returns its path.
func (s *Storage) EnsureJob(id string) (string, error) {
	dir := s.JobDir(id)
	if err := os.MkdirAll(filepath.Join(dir, pagesDirName), 0755); err != nil {
		return "", fmt.Errorf("create job %s: %w", id, err)
	}
	return dir, nil
}

// PagesDir returns the directory holding the page rasters of a job.
func (s *Storage) PagesDir(id string) string {
	return filepath.Join(s.JobDir(id), pagesDirName)
}

// Pages returns a raster source over the job's page images.
func (s *Storage) Pages(id string) *raster.DirSource {
	return raster.NewDirSource(s.PagesDir(id))
}

// SaveVision persists the analysis document for a job.
func (s *Storage) SaveVision(id string, doc *vision.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode vision document: %w", err)
	}
	return writeFileAtomic(filepath.Join(s.JobDir(id), visionFileName), data)
}

// LoadVision reads the analysis document of a job.
func (s *Storage) LoadVision(id string) (*vision.Document, error) {
	data, err := os.ReadFile(filepath.Join(s.JobDir(id), visionFileName))
	if err != nil {
		return nil, fmt.Errorf("read vision document for job %s: %w", id, err)
	}
	return vision.Parse(data)
}

// WriteReport persists the overlay report. The report file is a required
// artifact of every render, including failed ones.
func (s *Storage) WriteReport(id string, rep *overlay.Report) error {
	data, err := rep.MarshalIndent()
	if err != nil {
		return overlay.NewError(overlay.ErrReportWrite, "encode overlay report", err)
	}
	path := filepath.Join(s.JobDir(id), reportFileName)
	if err := writeFileAtomic(path, data); err != nil {
		return overlay.NewError(overlay.ErrReportWrite, "write overlay report", err)
	}
	return nil
}

// OutputPath returns where the rendered PDF lives. Debug renders get a
// distinct name so they never shadow a production output.
func (s *Storage) OutputPath(id string, debug bool) string {
	name := outputBaseName + ".pdf"
	if debug {
		name = outputBaseName + "_debug.pdf"
	}
	return filepath.Join(s.JobDir(id), name)
}

// WriteOutput persists the rendered PDF and returns its path.
func (s *Storage) WriteOutput(id string, pdfBytes []byte, debug bool) (string, error) {
	path := s.OutputPath(id, debug)
	if err := writeFileAtomic(path, pdfBytes); err != nil {
		return "", fmt.Errorf("write output pdf: %w", err)
	}
	return path, nil
}

// writeFileAtomic writes via a temp file and rename so a crashed run never
// leaves a truncated artifact behind.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
