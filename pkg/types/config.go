package types

// AbsentFields names how column filters treat a record whose field is absent.
type AbsentFields string

const (
	// AbsentShow lets an empty column filter pass records missing that field.
	AbsentShow AbsentFields = "show"

	// AbsentHide fails a column for any record missing that field, even when
	// the column's filter is empty.
	AbsentHide AbsentFields = "hide"
)

// ViewConfig holds settings for the record view.
type ViewConfig struct {
	// PageSizes is the enumerated set of selectable page sizes (default 10, 50, 100, 500).
	PageSizes []int `json:"page_sizes" yaml:"page_sizes" mapstructure:"page_sizes"`

	// PageSize is the initial page size; it must be one of PageSizes (default 10).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// AbsentFields selects the column-filter policy for absent fields (default "show").
	AbsentFields AbsentFields `json:"absent_fields" yaml:"absent_fields" mapstructure:"absent_fields"`

	// WindowRadius is the number of page buttons shown either side of the
	// current page (default 2).
	WindowRadius int `json:"window_radius" yaml:"window_radius" mapstructure:"window_radius"`
}

// ExportConfig holds settings for file export.
type ExportConfig struct {
	// Product is the filename prefix of exported files (default "BibliZap").
	Product string `json:"product" yaml:"product" mapstructure:"product"`

	// Dir is the directory exported files are written to (default ".").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// CacheConfig holds settings for the SQLite result cache.
type CacheConfig struct {
	// Path is the database file (default "citation-view.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Output is stderr, stdout, or a file path. The terminal UI owns stdout,
	// so the default is stderr.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// Config groups all settings read from citation-view.yaml.
type Config struct {
	View   ViewConfig   `json:"view" yaml:"view" mapstructure:"view"`
	Export ExportConfig `json:"export" yaml:"export" mapstructure:"export"`
	Cache  CacheConfig  `json:"cache" yaml:"cache" mapstructure:"cache"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() Config {
	return Config{
		View: ViewConfig{
			PageSizes:    []int{10, 50, 100, 500},
			PageSize:     10,
			AbsentFields: AbsentShow,
			WindowRadius: 2,
		},
		Export: ExportConfig{
			Product: "BibliZap",
			Dir:     ".",
		},
		Cache: CacheConfig{Path: "citation-view.db"},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}
