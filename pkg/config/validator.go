package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	themeNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_./-]+$`)
	yamlLineRegex    = regexp.MustCompile(`line (\d+)`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("theme_name", func(fl validator.FieldLevel) bool {
			return themeNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate performs schema and cross-field validation on the configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Field: "config", Message: "configuration is nil"}
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]struct{}, len(cfg.Themes))
	for i, name := range cfg.Themes {
		if _, dup := seen[name]; dup {
			return &ValidationError{Field: fmt.Sprintf("themes[%d]", i), Message: fmt.Sprintf("duplicate theme %q", name)}
		}
		seen[name] = struct{}{}
	}
	return validateManifests(cfg)
}

// ValidationError reports the first invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseError wraps YAML decoding failures with the offending line when known.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config: parse error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("config: parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("failed validation for tag '%s'", ve.Tag()),
			Err:     err,
		}
	}
	return &ValidationError{Field: "config", Message: err.Error(), Err: err}
}

func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}

func extractLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
