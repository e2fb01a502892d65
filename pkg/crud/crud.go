// Package crud runs sanitization and validation over a view's storage
// adapter, turning raw form submissions into persisted records.
package crud

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tangibleinc/dataview/pkg/fieldtype"
	"github.com/tangibleinc/dataview/pkg/storage"
	"github.com/tangibleinc/dataview/pkg/viewconfig"
)

// FieldError pins a validation message to the field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors accumulates every failed rule across a submission. It is
// a result, not an error: callers branch on emptiness and re-render the form
// with the messages attached.
type ValidationErrors []FieldError

// Empty reports whether no rule failed.
func (v ValidationErrors) Empty() bool { return len(v) == 0 }

// ByField groups messages under their field names for template rendering.
func (v ValidationErrors) ByField() map[string][]string {
	if len(v) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, fe := range v {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

func (v *ValidationErrors) add(field, format string, args ...any) {
	*v = append(*v, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Option configures a Service.
type Option func(*Service)

// WithSettings attaches the settings adapter used by singular-mode views.
func WithSettings(settings storage.SettingsAdapter) Option {
	return func(s *Service) { s.settings = settings }
}

// WithLogger attaches a logger for persistence diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// Service couples one view configuration with its storage. All submissions
// pass through Sanitize and Validate before they reach the adapter.
type Service struct {
	cfg      *viewconfig.Config
	types    *fieldtype.Registry
	store    storage.Adapter
	settings storage.SettingsAdapter
	log      *zap.SugaredLogger
}

// New constructs a Service. The adapter may be nil for singular-mode views
// that only ever touch the settings adapter.
func New(cfg *viewconfig.Config, types *fieldtype.Registry, store storage.Adapter, options ...Option) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("crud: nil config")
	}
	if types == nil {
		return nil, fmt.Errorf("crud: nil type registry")
	}

	s := &Service{
		cfg:   cfg,
		types: types,
		store: store,
		log:   zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Sanitize runs every present field through its type's sanitizer. Unknown
// keys are dropped; absent fields stay absent.
func (s *Service) Sanitize(input map[string]any) storage.Record {
	record := make(storage.Record, len(input))
	for _, field := range s.cfg.Fields {
		value, ok := input[field.Name]
		if !ok {
			continue
		}
		sanitize, err := s.types.Sanitizer(field.Type)
		if err != nil {
			// config validation rejects unknown types before a service exists
			continue
		}
		record[field.Name] = sanitize(value)
	}
	return record
}

// Validate checks a sanitized record against the view's field rules. Every
// rule runs; failures accumulate instead of stopping at the first.
func (s *Service) Validate(record storage.Record) ValidationErrors {
	var errs ValidationErrors
	for _, field := range s.cfg.Fields {
		value, present := record[field.Name]

		if field.Required && isEmptyValue(value, present) {
			errs.add(field.Name, "%s is required", field.FieldLabel())
		}
		if !present {
			continue
		}

		if len(field.Options) > 0 {
			if text, ok := value.(string); ok && text != "" && !containsOption(field.Options, text) {
				errs.add(field.Name, "%q is not an allowed value for %s", text, field.FieldLabel())
			}
		}

		if dataset, err := s.types.Dataset(field.Type); err == nil && dataset == fieldtype.DatasetInteger {
			if !isIntegerValue(value) {
				errs.add(field.Name, "%s must be a whole number", field.FieldLabel())
			}
		}

		for _, validate := range field.Validators {
			if validate == nil {
				continue
			}
			if err := validate(value); err != nil {
				errs.add(field.Name, "%s", err.Error())
			}
		}
	}
	return errs
}

// Create sanitizes, fills configured defaults for absent fields, validates,
// and inserts. Validation failures return without touching storage.
func (s *Service) Create(ctx context.Context, input map[string]any) (int64, ValidationErrors, error) {
	if s.store == nil {
		return 0, nil, fmt.Errorf("crud: no record adapter: %w", storage.ErrUnavailable)
	}

	record := s.Sanitize(input)
	s.applyDefaults(record)
	if errs := s.Validate(record); !errs.Empty() {
		return 0, errs, nil
	}

	id, err := s.store.Create(ctx, record)
	if err != nil {
		s.log.Errorw("create failed", "view", s.cfg.Slug, "error", err)
		return 0, nil, fmt.Errorf("crud: create %s: %w", s.cfg.Slug, err)
	}
	return id, nil, nil
}

// Get loads one record.
func (s *Service) Get(ctx context.Context, id int64) (storage.Record, error) {
	if s.store == nil {
		return nil, fmt.Errorf("crud: no record adapter: %w", storage.ErrUnavailable)
	}
	return s.store.Get(ctx, id)
}

// List loads every record.
func (s *Service) List(ctx context.Context) ([]storage.Record, error) {
	if s.store == nil {
		return nil, fmt.Errorf("crud: no record adapter: %w", storage.ErrUnavailable)
	}
	return s.store.List(ctx)
}

// Update sanitizes, validates, and rewrites an existing record.
func (s *Service) Update(ctx context.Context, id int64, input map[string]any) (ValidationErrors, error) {
	if s.store == nil {
		return nil, fmt.Errorf("crud: no record adapter: %w", storage.ErrUnavailable)
	}

	record := s.Sanitize(input)
	if errs := s.Validate(record); !errs.Empty() {
		return errs, nil
	}

	if err := s.store.Update(ctx, id, record); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		s.log.Errorw("update failed", "view", s.cfg.Slug, "id", id, "error", err)
		return nil, fmt.Errorf("crud: update %s: %w", s.cfg.Slug, err)
	}
	return nil, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s.store == nil {
		return fmt.Errorf("crud: no record adapter: %w", storage.ErrUnavailable)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		s.log.Errorw("delete failed", "view", s.cfg.Slug, "id", id, "error", err)
		return fmt.Errorf("crud: delete %s: %w", s.cfg.Slug, err)
	}
	return nil
}

// ReadSettings loads the singular-mode record, empty when never written.
func (s *Service) ReadSettings(ctx context.Context) (storage.Record, error) {
	if s.settings == nil {
		return nil, fmt.Errorf("crud: no settings adapter: %w", storage.ErrUnavailable)
	}
	return s.settings.Read(ctx)
}

// WriteSettings sanitizes, validates, and merges the singular-mode record.
func (s *Service) WriteSettings(ctx context.Context, input map[string]any) (ValidationErrors, error) {
	if s.settings == nil {
		return nil, fmt.Errorf("crud: no settings adapter: %w", storage.ErrUnavailable)
	}

	record := s.Sanitize(input)
	if errs := s.Validate(record); !errs.Empty() {
		return errs, nil
	}

	if err := s.settings.Write(ctx, record); err != nil {
		s.log.Errorw("settings write failed", "view", s.cfg.Slug, "error", err)
		return nil, fmt.Errorf("crud: write settings %s: %w", s.cfg.Slug, err)
	}
	return nil, nil
}

// applyDefaults fills absent fields that declare a default, sanitized the
// same way a submitted value would be.
func (s *Service) applyDefaults(record storage.Record) {
	for _, field := range s.cfg.Fields {
		if _, ok := record[field.Name]; ok || field.Default == nil {
			continue
		}
		sanitize, err := s.types.Sanitizer(field.Type)
		if err != nil {
			continue
		}
		record[field.Name] = sanitize(field.Default)
	}
}

// isEmptyValue decides whether a value fails a required check. Booleans are
// never empty; a stored false is a legitimate answer.
func isEmptyValue(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return false
	default:
		return false
	}
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

func isIntegerValue(value any) bool {
	switch v := value.(type) {
	case int, int32, int64:
		return true
	case float64:
		return v == float64(int64(v))
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return err == nil
	default:
		return false
	}
}
