// Package export writes applicants to files and reads them back from CSV.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/hireflow/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions with no writer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an output file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .csv, .json or .yaml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Record is the serialized form of an applicant.
type Record struct {
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Name        string    `json:"name" yaml:"name"`
	Phone       string    `json:"phone" yaml:"phone"`
	Email       string    `json:"email" yaml:"email"`
	JobPosition string    `json:"job_position" yaml:"job_position"`
	Status      string    `json:"status" yaml:"status"`
	Address     string    `json:"address" yaml:"address"`
	Rating      string    `json:"rating" yaml:"rating"`
	Avatar      string    `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Tags        []string  `json:"tags" yaml:"tags"`
}

// NewRecord converts an applicant for serialization.
func NewRecord(a model.Applicant) Record {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return Record{
		CreatedAt:   a.CreatedAt,
		Name:        a.Name,
		Phone:       a.Phone,
		Email:       a.Email,
		JobPosition: a.JobPosition,
		Status:      string(a.Status),
		Address:     a.Address,
		Rating:      a.Rating.String(),
		Avatar:      a.AvatarPath,
		Tags:        tags,
	}
}

// Records converts applicants for serialization.
func Records(applicants []model.Applicant) []Record {
	out := make([]Record, len(applicants))
	for i, a := range applicants {
		out[i] = NewRecord(a)
	}
	return out
}

// Write encodes applicants to w in format.
func Write(w io.Writer, format Format, applicants []model.Applicant) error {
	records := Records(applicants)
	switch format {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// FileExporter writes export files, resolving relative paths against Dir.
type FileExporter struct {
	Dir string
}

// NewFileExporter creates an exporter rooted at dir. An empty dir means the
// working directory.
func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{Dir: dir}
}

// Resolve returns the file path an export to path is written to.
func (e *FileExporter) Resolve(path string) string {
	if filepath.IsAbs(path) || e.Dir == "" {
		return path
	}
	return filepath.Join(e.Dir, path)
}

// Export implements service.Exporter. The file is written to a temporary
// sibling and renamed into place.
func (e *FileExporter) Export(ctx context.Context, path string, applicants []model.Applicant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	target := e.Resolve(path)
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".export-*")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Write(tmp, format, applicants); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}

	slog.Info("Exported applicants", "path", target, "format", format, "count", len(applicants))
	return nil
}
