// Package captcha orchestrates challenge issuance and verification.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kyiku/shape-captcha-go/internal/layout"
	"github.com/kyiku/shape-captcha-go/internal/shape"
	"github.com/kyiku/shape-captcha-go/internal/store"
)

// ErrGeneration wraps layout failures that survived every retry.
var ErrGeneration = errors.New("challenge generation failed")

// Renderer rasterizes a layout to PNG bytes.
type Renderer interface {
	RenderPNG(rng *rand.Rand, l *layout.Layout) ([]byte, error)
}

// Translator localizes the challenge prompt.
type Translator interface {
	Prompt(lang, typeName string) string
}

// Options configures the service.
type Options struct {
	Layout layout.Params
	// TTL bounds how long an unanswered challenge stays verifiable.
	TTL time.Duration
	// MaxLayoutRetries bounds whole-layout regeneration after a placement
	// failure.
	MaxLayoutRetries int
}

// DefaultOptions returns production defaults: 5 minute TTL, three layout
// retries.
func DefaultOptions() Options {
	return Options{
		Layout:           layout.DefaultParams(),
		TTL:              5 * time.Minute,
		MaxLayoutRetries: 3,
	}
}

// Challenge is one issued visual test.
type Challenge struct {
	ID     string
	Image  []byte // PNG
	Prompt string
	// TargetType is returned for diagnostics and logging only; callers
	// never need it to verify.
	TargetType string
}

// record is the stored ground truth for one challenge.
type record struct {
	TargetType string        `json:"target_type"`
	Layout     layout.Layout `json:"layout"`
	CreatedAt  time.Time     `json:"created_at"`
	ExpiresAt  time.Time     `json:"expires_at"`
}

// Service ties the layout algorithm, renderer and lifecycle store together.
// It holds no per-challenge state; all coordination happens through the
// store's atomic take, so multiple instances can share one backend.
type Service struct {
	registry *shape.Registry
	renderer Renderer
	store    store.Store
	catalog  Translator
	opts     Options

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a Service. A nil rng gets a time-seeded one.
func NewService(reg *shape.Registry, renderer Renderer, st store.Store, catalog Translator, rng *rand.Rand, opts Options) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.MaxLayoutRetries <= 0 {
		opts.MaxLayoutRetries = 1
	}
	return &Service{
		registry: reg,
		renderer: renderer,
		store:    st,
		catalog:  catalog,
		opts:     opts,
		rng:      rng,
	}
}

// Create issues a new challenge: generates a layout, renders it, stores the
// ground truth under a fresh id, and returns the localized prompt.
func (s *Service) Create(ctx context.Context, lang string) (*Challenge, error) {
	s.mu.Lock()
	l, err := s.generateLayoutLocked()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	img, err := s.renderer.RenderPNG(s.rng, l)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: render: %v", ErrGeneration, err)
	}

	id := uuid.New().String()
	targetType := l.Target().Type
	now := time.Now()
	rec := record{
		TargetType: targetType,
		Layout:     *l,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.opts.TTL),
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal record: %v", ErrGeneration, err)
	}
	if err := s.store.Put(ctx, id, payload, s.opts.TTL); err != nil {
		return nil, err
	}

	log.Printf("captcha: issued challenge %s (target: %s, shapes: %d)", id, targetType, len(l.Instances))
	return &Challenge{
		ID:         id,
		Image:      img,
		Prompt:     s.catalog.Prompt(lang, targetType),
		TargetType: targetType,
	}, nil
}

// Verify consumes the challenge and tests the click. Unknown, expired or
// already-used ids all report false without distinguishing which; store
// outages propagate as store.ErrUnavailable. The record is deleted by the
// take regardless of the outcome, so a challenge can never be answered
// twice.
func (s *Service) Verify(ctx context.Context, id string, x, y float64) (bool, error) {
	payload, err := s.store.Take(ctx, id)
	if err != nil {
		return false, err
	}
	if payload == nil {
		return false, nil
	}

	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		log.Printf("captcha: challenge %s: corrupt record: %v", id, err)
		return false, nil
	}

	// Walk instances in reverse draw order so a click in overlapping
	// outlines resolves to the topmost shape, then compare its type to
	// the target's.
	for i := len(rec.Layout.Instances) - 1; i >= 0; i-- {
		in := &rec.Layout.Instances[i]
		def, err := s.registry.Get(in.Type)
		if err != nil {
			log.Printf("captcha: challenge %s: %v", id, err)
			continue
		}
		if def.Contains(in, x, y) {
			return in.Type == rec.TargetType, nil
		}
	}
	return false, nil
}

// generateLayoutLocked retries whole-layout generation a bounded number of
// times. The caller must hold s.mu.
func (s *Service) generateLayoutLocked() (*layout.Layout, error) {
	var lastErr error
	for attempt := 0; attempt < s.opts.MaxLayoutRetries; attempt++ {
		l, err := layout.Generate(s.rng, s.registry, s.opts.Layout)
		if err == nil {
			return l, nil
		}
		lastErr = err
		// Configuration mismatches cannot be fixed by redrawing.
		if !errors.Is(err, layout.ErrRetryExhausted) {
			break
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrGeneration, lastErr)
}
