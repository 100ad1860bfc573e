package config

// ReporterConfig defines configuration for generating HTML diff reports
type ReporterConfig struct {
	OutputDir   string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	ReportTitle string `json:"report_title,omitempty" yaml:"report_title,omitempty"`

	// BaseDir is prefixed onto clip and thumbnail paths inside the report,
	// for serving the output directory under a sub-path.
	BaseDir string `json:"base_dir,omitempty" yaml:"base_dir,omitempty"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		OutputDir:   DefaultReporterOutputDir,
		ReportTitle: DefaultReportTitle,
		BaseDir:     "",
	}
}
