package nexus

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigError represents domain-specific configuration errors
type ConfigError struct {
	Code    string
	Message string
	Cause   error
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e ConfigError) Unwrap() error {
	return e.Cause
}

const (
	ErrCodeFileNotFound = "CONFIG_FILE_NOT_FOUND"
	ErrCodeValidation   = "CONFIG_VALIDATION_FAILED"
	ErrCodeEnvironment  = "CONFIG_ENV_READ_FAILED"
	ErrCodeMerge        = "CONFIG_MERGE_FAILED"
)

// Loader reads configuration into a struct from an optional file plus the
// environment (environment taking precedence), back-fills unset fields from a
// defaults value, then validates the result.
type Loader struct {
	fileName string
	defaults interface{}
	validate *validator.Validate
}

// LoaderOption is a functional option for configuring the loader
type LoaderOption func(*Loader)

// WithFileName sets an optional configuration file read before the environment
func WithFileName(fileName string) LoaderOption {
	return func(l *Loader) {
		l.fileName = fileName
	}
}

// WithDefaults supplies a value whose non-zero fields fill any field the
// sources left unset. Must be the same concrete type as the load target.
func WithDefaults(defaults interface{}) LoaderOption {
	return func(l *Loader) {
		l.defaults = defaults
	}
}

// NewLoader creates a configuration loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{validate: validator.New()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load populates target from the configured sources and validates it.
func (l *Loader) Load(target interface{}) error {
	if l.fileName != "" {
		if _, err := os.Stat(l.fileName); err != nil {
			return ConfigError{Code: ErrCodeFileNotFound, Message: l.fileName, Cause: err}
		}
		// ReadConfig reads the file and then overlays the environment.
		if err := cleanenv.ReadConfig(l.fileName, target); err != nil {
			return ConfigError{Code: ErrCodeEnvironment, Message: err.Error(), Cause: err}
		}
	} else if err := cleanenv.ReadEnv(target); err != nil {
		return ConfigError{Code: ErrCodeEnvironment, Message: err.Error(), Cause: err}
	}

	if l.defaults != nil {
		if err := mergo.Merge(target, l.defaults); err != nil {
			return ConfigError{Code: ErrCodeMerge, Message: err.Error(), Cause: err}
		}
	}

	if err := l.validate.Struct(target); err != nil {
		return ConfigError{Code: ErrCodeValidation, Message: err.Error(), Cause: err}
	}
	return nil
}
