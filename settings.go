package binsweep

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Settings are the user-facing knobs of a sweep, as read from a YAML file and command line flags.
type Settings struct {
	Alphabet              string        `yaml:"alphabet" validate:"required"`
	Length                int           `yaml:"length" validate:"gte=1,lte=8"`
	Endpoint              string        `yaml:"endpoint" validate:"required,url"`
	MaxConcurrentRequests int64         `yaml:"max_concurrent_requests" validate:"gte=0"`
	RequestDelay          time.Duration `yaml:"request_delay" validate:"gte=0"`
	Timeout               time.Duration `yaml:"timeout" validate:"gte=0"`
	FailurePolicy         string        `yaml:"failure_policy" validate:"oneof=ignore report"`
	SkipCertVerify        bool          `yaml:"skip_cert_verify"`
	ArchiveDir            string        `yaml:"archive_dir"`
}

// DefaultSettings sweeps every three character bin on myjson with no throttling, no timeout and failures ignored.
func DefaultSettings() *Settings {
	return &Settings{
		Alphabet:      DefaultAlphabet,
		Length:        3,
		Endpoint:      DefaultEndpoint,
		FailurePolicy: IgnoreFailures.String(),
	}
}

// LoadSettingsFile reads YAML settings from path on top of the defaults.
// Keys missing from the file keep their default value.
func LoadSettingsFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	return settings, nil
}

// Validate checks the settings before a Config is built from them.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Config turns validated settings into a sweeper Config.
func (s *Settings) Config(logger *zap.Logger, plugins ...Plugin) (*Config, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	alphabet, err := NewAlphabet(s.Alphabet)
	if err != nil {
		return nil, err
	}

	enumerator, err := NewEnumerator(alphabet, s.Length)
	if err != nil {
		return nil, err
	}

	endpoint, err := ParseEndpoint(s.Endpoint)
	if err != nil {
		return nil, err
	}

	policy, err := ParseFailurePolicy(s.FailurePolicy)
	if err != nil {
		return nil, err
	}

	return &Config{
		Enumerator:            enumerator,
		Endpoint:              endpoint,
		Client:                NewClient(s.Timeout, s.SkipCertVerify),
		MaxConcurrentRequests: s.MaxConcurrentRequests,
		RequestDelay:          s.RequestDelay,
		FailurePolicy:         policy,
		Plugins:               plugins,
		Logger:                logger,
	}, nil
}
