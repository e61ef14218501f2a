package changelog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a database validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// SchemaVersionError is returned for a database written by an incompatible
// build.
type SchemaVersionError struct {
	Found     int
	Supported int
}

func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf("unsupported schema_version %d (this build reads version %d; re-run scrape)",
		e.Found, e.Supported)
}

// Load reads and validates a database file.
func Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer f.Close()

	db, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return db, nil
}

// LoadFromReader reads and validates a database from an io.Reader.
func LoadFromReader(r io.Reader) (*Database, error) {
	var db Database

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&db); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Message: "database is empty"}
		}
		return nil, fmt.Errorf("parsing database YAML: %w", err)
	}

	if err := Validate(&db); err != nil {
		return nil, err
	}
	return &db, nil
}

var validate = validator.New()

// Validate checks schema version, required record fields, and identifier
// uniqueness. It returns the first problem found.
func Validate(db *Database) error {
	if db.SchemaVersion != SchemaVersion {
		return &SchemaVersionError{Found: db.SchemaVersion, Supported: SchemaVersion}
	}
	if !db.BaseRelease.Valid() {
		return &ValidationError{
			Field:   "base_release",
			Message: fmt.Sprintf("invalid release %q", db.BaseRelease),
		}
	}

	if err := validate.Struct(db); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{
				Field:   fieldPath(fieldErrs[0].Namespace()),
				Message: formatValidationError(fieldErrs[0]),
			}
		}
		return &ValidationError{Message: err.Error()}
	}

	seen := make(map[string]int, len(db.Changes))
	for i, c := range db.Changes {
		id := c.UniqueID()
		if first, dup := seen[id]; dup {
			return &ValidationError{
				Field:   fmt.Sprintf("changes[%d]", i),
				Message: fmt.Sprintf("duplicate record %q (heading path and title match changes[%d] up to case and spacing)", id, first),
			}
		}
		seen[id] = i
	}
	return nil
}

// Marshal encodes db as YAML.
func Marshal(db *Database) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(db); err != nil {
		return nil, fmt.Errorf("encoding database: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding database: %w", err)
	}
	return buf.Bytes(), nil
}

// Save validates db and replaces the file at path in one step. Readers see
// either the old or the new database, never a partial one.
func Save(path string, db *Database) error {
	if err := Validate(db); err != nil {
		return fmt.Errorf("refusing to save invalid database: %w", err)
	}
	data, err := Marshal(db)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing database: %w", err)
	}
	return nil
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// fieldPath turns a validator namespace such as "Database.Changes[3].Title"
// into "changes[3].title".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnakeCase(p)
	}
	return strings.Join(parts, ".")
}

func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
