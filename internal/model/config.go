package model

import "time"

// Config holds all IREC validator configuration
type Config struct {
	Rules       RulesConfig       `yaml:"rules" mapstructure:"rules"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Document    DocumentConfig    `yaml:"document" mapstructure:"document"`
}

// RulesConfig holds the tunable thresholds of the questionnaire rules
type RulesConfig struct {
	TrainingValidityYears int    `yaml:"training_validity_years" mapstructure:"training_validity_years"` // CITI/TRREE certificates older than this fail
	MaxCollectionMonths   int    `yaml:"max_collection_months" mapstructure:"max_collection_months"`     // Longest data collection span without extension
	HomeInstitution       string `yaml:"home_institution" mapstructure:"home_institution"`               // Research sites naming it need no outside letters

	InstitutionDomains []string `yaml:"institution_domains" mapstructure:"institution_domains"` // Survey hosts run by the home institution
	SurveyPlatforms    []string `yaml:"survey_platforms" mapstructure:"survey_platforms"`       // Third-party survey hosts the office accepts

	PurposeWords     WordRange `yaml:"purpose_words" mapstructure:"purpose_words"`
	MethodologyWords WordRange `yaml:"methodology_words" mapstructure:"methodology_words"`
	AnalysisWords    WordRange `yaml:"analysis_words" mapstructure:"analysis_words"`
}

// WordRange is an inclusive word-count bound
type WordRange struct {
	Min int `yaml:"min" mapstructure:"min"`
	Max int `yaml:"max" mapstructure:"max"`
}

// Contains reports whether n lies within the range
func (w WordRange) Contains(n int) bool {
	return n >= w.Min && n <= w.Max
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
	Color         bool   `yaml:"color" mapstructure:"color"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
	LogFormat     string `yaml:"log_format" mapstructure:"log_format"` // console or json
}

// ServerConfig controls the upload endpoint
type ServerConfig struct {
	Listen            string        `yaml:"listen" mapstructure:"listen"`
	MaxUploadBytes    int64         `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	AllowedOrigins    []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// CacheConfig controls the parsed-document cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// DocumentConfig controls document loading
type DocumentConfig struct {
	MaxFileBytes int64 `yaml:"max_file_bytes" mapstructure:"max_file_bytes"`
}

// DefaultRules returns the questionnaire thresholds used by the IREC office
func DefaultRules() RulesConfig {
	return RulesConfig{
		TrainingValidityYears: 3,
		MaxCollectionMonths:   12,
		HomeInstitution:       "nazarbayev university",
		InstitutionDomains:    []string{"nu.edu.kz"},
		SurveyPlatforms: []string{
			"qualtrics.com",
			"surveymonkey.com",
			"docs.google.com",
			"forms.gle",
			"forms.office.com",
			"limesurvey.net",
		},
		PurposeWords:     WordRange{Min: 250, Max: 300},
		MethodologyWords: WordRange{Min: 250, Max: 300},
		AnalysisWords:    WordRange{Min: 150, Max: 300},
	}
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Rules: DefaultRules(),
		Output: OutputConfig{
			Color:         true,
			IncludeFooter: true,
			LogFormat:     "console",
		},
		Server: ServerConfig{
			Listen:            ":8000",
			MaxUploadBytes:    20 << 20,
			RequestsPerSecond: 2,
			Burst:             5,
			AllowedOrigins:    []string{"*"},
			ShutdownTimeout:   10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Document: DocumentConfig{
			MaxFileBytes: 20 << 20,
		},
	}
}
