// Package localization maps filter keywords to their per-locale spellings and
// converts filter tokens into typed values.
package localization

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
)

// ErrSealed is returned by RegisterTranslation once the registry is sealed.
var ErrSealed = errors.New("localization registry is sealed")

// Translation keys understood by the filter converters.
const (
	KeyAchievements = "achievements"
	KeyFalse        = "false"
	KeyNo           = "no"
	KeySelected     = "selected"
	KeySource       = "source"
	KeyTrue         = "true"
	KeyVersion      = "version"
	KeyYes          = "yes"
)

var translationKeys = []string{
	KeyAchievements,
	KeyFalse,
	KeyNo,
	KeySelected,
	KeySource,
	KeyTrue,
	KeyVersion,
	KeyYes,
}

// Registry stores locale × key translations. Values are kept lowercase.
// Writes are expected during startup only; after Seal the registry is read-only.
type Registry struct {
	mu     sync.RWMutex
	values map[string]map[string]string // key → locale → value
	sealed bool
}

func NewRegistry() *Registry {
	return &Registry{values: make(map[string]map[string]string)}
}

// RegisterTranslation stores value for (locale, key), replacing any earlier value.
func (r *Registry) RegisterTranslation(locale, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("register %s/%s: %w", locale, key, ErrSealed)
	}
	byLocale, ok := r.values[key]
	if !ok {
		byLocale = make(map[string]string)
		r.values[key] = byLocale
	}
	byLocale[locale] = strings.ToLower(value)
	return nil
}

// Seal ends the registration phase.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// GetTranslation returns the value for (locale, key), or "" when missing.
func (r *Registry) GetTranslation(locale, key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[key][locale]
}

// GetTranslations returns every locale's value for key.
func (r *Registry) GetTranslations(key string) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.values[key]))
	maps.Copy(out, r.values[key])
	return out
}

// GetTranslationKeys returns the fixed set of keys converters look up.
func (r *Registry) GetTranslationKeys() []string {
	return append([]string(nil), translationKeys...)
}

// Defaults registers the English spelling of every key.
func Defaults(r *Registry) error {
	for _, k := range translationKeys {
		if err := r.RegisterTranslation("en", k, k); err != nil {
			return err
		}
	}
	return nil
}
