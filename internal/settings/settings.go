// Package settings owns the application settings: UI language and the two
// global accent colors. It carries no business logic.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/avulnerador/shop-master/internal/storage"
)

// Supported UI languages.
const (
	LanguageEN = "en"
	LanguagePT = "pt"
	LanguageES = "es"
)

// Defaults applied when nothing is persisted.
const (
	DefaultLanguage       = LanguagePT
	DefaultPrimaryColor   = "#6366f1"
	DefaultSecondaryColor = "#a855f7"
)

var validLanguages = map[string]bool{LanguageEN: true, LanguagePT: true, LanguageES: true}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// AppSettings is the persisted settings document.
type AppSettings struct {
	Language       string `json:"language"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

// Validate checks the closed language set and hex color shapes.
func (s AppSettings) Validate() error {
	if !validLanguages[s.Language] {
		return fmt.Errorf("language must be one of [en, pt, es], got %q", s.Language)
	}
	if !hexColor.MatchString(s.PrimaryColor) {
		return fmt.Errorf("primaryColor must be a #rrggbb hex string, got %q", s.PrimaryColor)
	}
	if !hexColor.MatchString(s.SecondaryColor) {
		return fmt.Errorf("secondaryColor must be a #rrggbb hex string, got %q", s.SecondaryColor)
	}
	return nil
}

// Patch carries partial settings updates; nil fields are left unchanged.
type Patch struct {
	Language       *string `json:"language,omitempty"`
	PrimaryColor   *string `json:"primaryColor,omitempty"`
	SecondaryColor *string `json:"secondaryColor,omitempty"`
}

// Store owns the single AppSettings value with write-through persistence.
type Store struct {
	mu      sync.RWMutex
	kv      storage.KV
	logger  *zap.Logger
	current AppSettings
}

// NewStore creates a settings store with defaults applied.
//
// Precondition: kv and logger must be non-nil.
func NewStore(kv storage.KV, logger *zap.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger,
		current: AppSettings{
			Language:       DefaultLanguage,
			PrimaryColor:   DefaultPrimaryColor,
			SecondaryColor: DefaultSecondaryColor,
		},
	}
}

// Load reads the persisted settings, keeping defaults when the document is
// absent or unparsable.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, found, err := s.kv.Get(ctx, storage.KeyAppSettings)
	if err != nil {
		return fmt.Errorf("loading app settings: %w", err)
	}
	if !found {
		return nil
	}
	var loaded AppSettings
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("discarding unparsable app settings, keeping defaults", zap.Error(err))
		return nil
	}
	if err := loaded.Validate(); err != nil {
		s.logger.Warn("discarding invalid app settings, keeping defaults", zap.Error(err))
		return nil
	}
	s.current = loaded
	return nil
}

// Current returns a copy of the settings.
func (s *Store) Current() AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies a partial patch and persists the result.
//
// Postcondition: the stored settings remain valid; an invalid patch is
// rejected whole with no state change.
func (s *Store) Update(ctx context.Context, p Patch) (AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	if p.Language != nil {
		next.Language = *p.Language
	}
	if p.PrimaryColor != nil {
		next.PrimaryColor = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		next.SecondaryColor = *p.SecondaryColor
	}
	if err := next.Validate(); err != nil {
		return s.current, err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return s.current, fmt.Errorf("encoding app settings: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyAppSettings, data); err != nil {
		return s.current, fmt.Errorf("persisting app settings: %w", err)
	}
	s.current = next
	return next, nil
}
