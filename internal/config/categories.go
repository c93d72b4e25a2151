package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DocumentCategory is one entry of the closed category set used to group
// employee documents.
type DocumentCategory struct {
	Key   string `mapstructure:"key"`
	Label string `mapstructure:"label"`
}

// CategoryConfig is the closed category set plus the catch-all key any
// unrecognized value normalizes to.
type CategoryConfig struct {
	Categories []DocumentCategory `mapstructure:"categories"`
	Fallback   string             `mapstructure:"fallback"`
}

func DefaultCategoryConfig() CategoryConfig {
	return CategoryConfig{
		Categories: []DocumentCategory{
			{Key: "legajo", Label: "Legajo"},
			{Key: "recibos-anteriores", Label: "Recibos anteriores"},
			{Key: "licencias", Label: "Licencias"},
			{Key: "sanciones", Label: "Sanciones"},
			{Key: "otros", Label: "Otros"},
		},
		Fallback: "otros",
	}
}

// Keys returns the category keys in declaration order.
func (c CategoryConfig) Keys() []string {
	keys := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		keys = append(keys, cat.Key)
	}
	return keys
}

// Label returns the display label for a key, falling back to the key itself.
func (c CategoryConfig) Label(key string) string {
	for _, cat := range c.Categories {
		if cat.Key == key {
			return cat.Label
		}
	}
	return key
}

// Normalize maps any raw category value into the closed set. Unknown or
// empty values land on the fallback key, so the mapping is total.
func (c CategoryConfig) Normalize(raw string) string {
	candidate := strings.ToLower(strings.TrimSpace(raw))
	for _, cat := range c.Categories {
		if cat.Key == candidate {
			return cat.Key
		}
	}
	return c.Fallback
}

// CategoryConfigHolder serves the current category set and hot-reloads it
// when the backing file changes.
type CategoryConfigHolder struct {
	current atomic.Value // holds CategoryConfig
}

// NewStaticCategoryConfigHolder wraps a fixed config, for tests and for
// callers that do not want file-backed reloads.
func NewStaticCategoryConfigHolder(cfg CategoryConfig) *CategoryConfigHolder {
	holder := &CategoryConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewCategoryConfigHolder() (*CategoryConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("categories")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/workfolio/config")
	v.AddConfigPath("/etc/workfolio")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WORKFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCategoryConfig()
		v.SetDefault("documents.categories", defaults.Categories)
		v.SetDefault("documents.fallback", defaults.Fallback)
	}

	var cfg CategoryConfig
	if err := v.UnmarshalKey("documents", &cfg); err != nil {
		return nil, err
	}
	if err := validateCategoryConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CategoryConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CategoryConfig
		if err := v.UnmarshalKey("documents", &updated); err != nil {
			log.Printf("[category-config] reload failed: %v", err)
			return
		}
		if err := validateCategoryConfig(updated); err != nil {
			log.Printf("[category-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
	})

	return holder, nil
}

// Current returns the active category set.
func (h *CategoryConfigHolder) Current() CategoryConfig {
	if cfg, ok := h.current.Load().(CategoryConfig); ok {
		return cfg
	}
	return DefaultCategoryConfig()
}

func validateCategoryConfig(cfg CategoryConfig) error {
	if len(cfg.Categories) == 0 {
		return errors.New("documents.categories must not be empty")
	}
	seen := make(map[string]struct{}, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		key := strings.TrimSpace(cat.Key)
		if key == "" {
			return errors.New("documents.categories entries require a key")
		}
		if _, dup := seen[key]; dup {
			return errors.New("documents.categories keys must be unique")
		}
		seen[key] = struct{}{}
	}
	if _, ok := seen[cfg.Fallback]; !ok {
		return errors.New("documents.fallback must be one of the configured keys")
	}
	return nil
}
