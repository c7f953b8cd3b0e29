package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SanteonNL/welfare/models/welfare"
	"github.com/rs/zerolog"
)

// OutputManager writes export files into a timestamped directory
type OutputManager struct {
	baseDir   string
	timestamp string
	log       zerolog.Logger
}

// NewOutputManager creates a new OutputManager below the given base directory
func NewOutputManager(baseDir string, log zerolog.Logger) (*OutputManager, error) {
	timestamp := time.Now().Format("20060102_150405")

	outputPath := filepath.Join(baseDir, timestamp)
	if err := os.MkdirAll(outputPath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &OutputManager{
		baseDir:   outputPath,
		timestamp: timestamp,
		log:       log,
	}, nil
}

// WriteExport serializes records of page in format f and returns the written path
func (om *OutputManager) WriteExport(records []welfare.ServiceRecord, page int, f Format) (string, error) {
	data, err := Encode(records, f)
	if err != nil {
		return "", err
	}

	outputPath := om.GetOutputPath(FileName(page, f))
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	om.log.Debug().
		Str("file", outputPath).
		Int("records", len(records)).
		Str("format", string(f)).
		Msg("Wrote export file")

	return outputPath, nil
}

// GetOutputPath returns the full path for a given filename
func (om *OutputManager) GetOutputPath(filename string) string {
	return filepath.Join(om.baseDir, filename)
}

// GetBaseDir returns the timestamped output directory
func (om *OutputManager) GetBaseDir() string {
	return om.baseDir
}
