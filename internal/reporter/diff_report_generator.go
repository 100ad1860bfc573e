package reporter

import (
	"bytes"
	"encoding/json"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
	"github.com/aleister1102/uidiff/internal/common/filemanager"
	"github.com/aleister1102/uidiff/internal/config"
	"github.com/aleister1102/uidiff/internal/models"
	"github.com/rs/zerolog"
)

// DiffReportGenerator renders the HTML diff report from a completed run
type DiffReportGenerator struct {
	config       *config.ReporterConfig
	logger       zerolog.Logger
	template     *template.Template
	fileManager  *filemanager.FileManager
	directoryMgr *DirectoryManager
}

// DiffReportGeneratorBuilder provides a fluent interface for creating DiffReportGenerator
type DiffReportGeneratorBuilder struct {
	config *config.ReporterConfig
	logger zerolog.Logger
}

// NewDiffReportGeneratorBuilder creates a new DiffReportGeneratorBuilder
func NewDiffReportGeneratorBuilder(logger zerolog.Logger) *DiffReportGeneratorBuilder {
	return &DiffReportGeneratorBuilder{
		logger: logger.With().Str("component", "DiffReportGenerator").Logger(),
	}
}

// WithReporterConfig sets the reporter configuration
func (b *DiffReportGeneratorBuilder) WithReporterConfig(cfg *config.ReporterConfig) *DiffReportGeneratorBuilder {
	b.config = cfg
	return b
}

// Build creates a new DiffReportGenerator instance
func (b *DiffReportGeneratorBuilder) Build() (*DiffReportGenerator, error) {
	if b.config == nil {
		return nil, errorwrapper.NewValidationError("config", b.config, "reporter config cannot be nil")
	}

	tmpl, err := template.ParseFS(templatesFS, DefaultReportTemplateName)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse diff report template")
	}

	return &DiffReportGenerator{
		config:       b.config,
		logger:       b.logger,
		template:     tmpl,
		fileManager:  filemanager.NewFileManager(b.logger),
		directoryMgr: NewDirectoryManager(b.logger),
	}, nil
}

// reportData is the template payload
type reportData struct {
	ReportTitle string
	ResultText  string
	Video1Src   string
	Video2Src   string
	DiffSrc     string
	ChunksJSON  template.JS
}

// GenerateReport renders the HTML report into OutputDir and returns the
// written file path. Clip and thumbnail paths inside clipSets are report
// relative; the configured base dir is prefixed onto every media path so
// the output directory can be served under a sub-path.
func (g *DiffReportGenerator) GenerateReport(result *models.DiffRunResult, diffVideoName, outputName string) (string, error) {
	if result == nil {
		return "", errorwrapper.NewValidationError("result", result, "diff run result cannot be nil")
	}

	if !strings.HasSuffix(strings.ToLower(outputName), ".html") {
		outputName += ".html"
	}

	if err := g.directoryMgr.EnsureOutputDirectories(g.config.OutputDir); err != nil {
		return "", err
	}

	chunksJSON, err := g.marshalClipSets(result.ClipSets)
	if err != nil {
		return "", err
	}

	data := reportData{
		ReportTitle: g.reportTitle(),
		ResultText:  result.Summary.ResultText(),
		Video1Src:   g.prefixBaseDir(filepath.Base(result.Video1Path)),
		Video2Src:   g.prefixBaseDir(filepath.Base(result.Video2Path)),
		DiffSrc:     g.prefixBaseDir(diffVideoName),
		ChunksJSON:  template.JS(chunksJSON),
	}

	var buf bytes.Buffer
	if err := g.template.Execute(&buf, data); err != nil {
		return "", errorwrapper.WrapError(err, "failed to render diff report template")
	}

	outputPath := filepath.Join(g.config.OutputDir, outputName)
	opts := filemanager.DefaultFileWriteOptions()
	opts.Permissions = FilePermissions
	if err := g.fileManager.WriteFile(outputPath, buf.Bytes(), opts); err != nil {
		return "", errorwrapper.WrapError(err, "failed to write diff report")
	}

	g.logger.Info().
		Str("path", outputPath).
		Int("chunks", len(result.ClipSets)).
		Msg("Generated diff report")

	return outputPath, nil
}

// OutputDir returns the configured report output directory.
func (g *DiffReportGenerator) OutputDir() string {
	return g.config.OutputDir
}

// EnsureOutputDirectory creates the report output directory.
func (g *DiffReportGenerator) EnsureOutputDirectory() error {
	return g.directoryMgr.EnsureOutputDirectories(g.config.OutputDir)
}

// ChunkDir returns the artifact directory for a report output name,
// derived from the diff video stem.
func (g *DiffReportGenerator) ChunkDir(diffVideoName string) string {
	stem := strings.TrimSuffix(diffVideoName, filepath.Ext(diffVideoName))
	return filepath.Join(g.config.OutputDir, stem+"-chunks")
}

// EnsureChunkDirectory creates the per-run artifact directory
func (g *DiffReportGenerator) EnsureChunkDirectory(diffVideoName string) (string, error) {
	dir := g.ChunkDir(diffVideoName)
	if err := g.directoryMgr.EnsureChunkDirectory(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// marshalClipSets serializes the clip sets with base-dir prefixed media paths
func (g *DiffReportGenerator) marshalClipSets(clipSets []models.ClipSet) (string, error) {
	processed := make([]models.ClipSet, 0, len(clipSets))
	for _, cs := range clipSets {
		cs.Clips.Video1 = g.prefixBaseDir(cs.Clips.Video1)
		cs.Clips.Video2 = g.prefixBaseDir(cs.Clips.Video2)
		cs.Clips.Diff = g.prefixBaseDir(cs.Clips.Diff)
		cs.Thumb = g.prefixBaseDir(cs.Thumb)
		processed = append(processed, cs)
	}

	data, err := json.Marshal(processed)
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to marshal clip sets")
	}
	return string(data), nil
}

// prefixBaseDir joins the configured base dir onto a report-relative path.
// Empty paths stay empty so absent clips keep their meaning.
func (g *DiffReportGenerator) prefixBaseDir(path string) string {
	if path == "" || g.config.BaseDir == "" {
		return path
	}
	return filepath.ToSlash(filepath.Join(g.config.BaseDir, path))
}

// reportTitle returns the configured title with a default fallback
func (g *DiffReportGenerator) reportTitle() string {
	if g.config.ReportTitle != "" {
		return g.config.ReportTitle
	}
	return DefaultReportTitle
}
