// Package config defines the detector configuration and its YAML loader.
package config

// DetectorConfig is the root configuration for the detection service.
type DetectorConfig struct {
	Lexicon    LexiconConfig    `yaml:"lexicon"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	API        APIConfig        `yaml:"api"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// LexiconConfig configures the lexical term store.
type LexiconConfig struct {
	// TermFile is a line-delimited file; the substring before the first
	// comma of each line is a term. Required.
	TermFile string `yaml:"term_file"`
}

// ClassifierConfig configures the contextual (KoBERT) classifier.
type ClassifierConfig struct {
	// ModelPath points at the pretrained weight artifact. Required.
	ModelPath string `yaml:"model_path"`
	// MaxSequenceLength bounds tokenization; longer inputs are truncated.
	MaxSequenceLength int `yaml:"max_sequence_length"`
	// UseCPU forces CPU inference even when an accelerator is present.
	UseCPU bool `yaml:"use_cpu"`
}

// NormalizerConfig selects the script ranges the normalizer keeps.
// Known script names: hangul, hangul_jamo, cjk, cjk_ext_a, digits.
// An empty list selects all of them.
type NormalizerConfig struct {
	Scripts []string `yaml:"scripts"`
}

// APIConfig configures the analysis HTTP API.
type APIConfig struct {
	Port int `yaml:"port"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Port int `yaml:"port"`
}

const (
	defaultMaxSequenceLength = 256
	defaultAPIPort           = 8080
	defaultMetricsPort       = 9190
)

// applyDefaults fills zero-valued fields with their defaults.
func (c *DetectorConfig) applyDefaults() {
	if c.Classifier.MaxSequenceLength == 0 {
		c.Classifier.MaxSequenceLength = defaultMaxSequenceLength
	}
	if c.API.Port == 0 {
		c.API.Port = defaultAPIPort
	}
	if c.Metrics.Port == 0 {
		c.Metrics.Port = defaultMetricsPort
	}
}
