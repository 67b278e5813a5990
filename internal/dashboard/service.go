// Package dashboard holds the use cases behind each dashboard view. Every
// operation reads or mutates the shared repository, waits out the configured
// view delay and publishes a change event when state changes.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Mrsumitborade/safe-earth-response/internal/events"
	"github.com/Mrsumitborade/safe-earth-response/internal/models"
	"github.com/Mrsumitborade/safe-earth-response/internal/repository"
	"github.com/Mrsumitborade/safe-earth-response/internal/simulation"
)

var (
	ErrNotFound   = repository.ErrNotFound
	ErrValidation = errors.New("validation error")
)

// Delays are the artificial waits each view performs before answering.
type Delays struct {
	Load    time.Duration
	Request time.Duration
	Report  time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Load:    1000 * time.Millisecond,
		Request: 800 * time.Millisecond,
		Report:  2000 * time.Millisecond,
	}
}

type Service struct {
	repo      repository.Repository
	sim       *simulation.Simulator
	publisher *events.Publisher
	delays    Delays
	validate  *validator.Validate
	now       func() time.Time
}

// NewService wires the use cases. publisher may be nil.
func NewService(repo repository.Repository, sim *simulation.Simulator, publisher *events.Publisher, delays Delays) *Service {
	return &Service{
		repo:      repo,
		sim:       sim,
		publisher: publisher,
		delays:    delays,
		validate:  newValidator(),
		now:       time.Now,
	}
}

// newValidator reports field errors under their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FieldError names an invalid input field and the rule it broke.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func fieldError(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (s *Service) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fe.Tag()})
	}
	return out
}

func (s *Service) publish(ctx context.Context, t models.EventType, payload any) {
	s.publisher.Publish(ctx, models.NewEvent(t, payload))
}

// Reset restores the fixture dataset.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return err
	}
	s.publish(ctx, models.EventStoreReset, nil)
	return nil
}
