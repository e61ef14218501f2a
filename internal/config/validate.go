package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/rubychanges/internal/change"
)

// ValidationError points at the config file, and the line or the key, that
// failed to load.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	// Field is the config key, e.g. "default_level".
	Field string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// configValidator reports fields by their koanf key, skips koanf:"-"
// fields and knows the "release" tag.
var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
	_ = v.RegisterValidation("release", func(fl validator.FieldLevel) bool {
		_, err := change.ParseRelease(fl.Field().String())
		return err == nil
	})
	return v
}

// yamlPosition matches the position yaml.v3 puts in syntax errors:
// "yaml: line 5: ..." or "yaml: line 5: column 3: ...".
var yamlPosition = regexp.MustCompile(`^yaml: line (\d+):(?: column (\d+):)? ?`)

// ValidateYAMLSyntax parses the file at filePath and reports where its YAML
// breaks. Missing and blank files are valid; the defaults apply.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		msg := err.Error()
		if errors.Is(err, os.ErrPermission) {
			msg = "permission denied"
		}
		return &ValidationError{FilePath: filePath, Message: msg}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	err = yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{FilePath: filePath, Message: strings.Join(typeErr.Errors, "; ")}
	}

	verr := &ValidationError{FilePath: filePath, Message: err.Error()}
	if m := yamlPosition.FindStringSubmatch(err.Error()); m != nil {
		verr.Line, _ = strconv.Atoi(m[1])
		verr.Column = 1
		if m[2] != "" {
			verr.Column, _ = strconv.Atoi(m[2])
		}
		verr.Message = strings.TrimPrefix(err.Error(), m[0])
	}
	return verr
}

// ValidateConfigValues checks cfg against its validate tags and reports the
// first offending key.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	fe := fieldErrs[0]
	return &ValidationError{
		FilePath: filePath,
		Field:    fe.Field(),
		Message:  describe(fe),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "release":
		return fmt.Sprintf("%q is not a release number like 2.3", fe.Value())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
