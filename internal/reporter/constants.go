package reporter

const (
	// Embedded template path
	DefaultReportTemplateName = "templates/diff_report.html.tmpl"

	// File permissions
	DirPermissions  = 0755
	FilePermissions = 0644

	// Report generation defaults
	DefaultReportTitle = "Video Diff Report"
)
