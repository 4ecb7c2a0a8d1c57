package services

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
)

// RenderDefaults are the layout values filled in for any page setting a
// template left unset.
type RenderDefaults struct {
	LogoScale       float64 `yaml:"logoScale"`
	LogoPositionX   float64 `yaml:"logoPositionX"`
	LogoPositionY   float64 `yaml:"logoPositionY"`
	LineHeight      float64 `yaml:"lineHeight"`
	FooterLogoScale float64 `yaml:"footerLogoScale"`
}

func DefaultRenderDefaults() RenderDefaults {
	return RenderDefaults{
		LogoScale:       80,
		LogoPositionX:   50,
		LogoPositionY:   50,
		LineHeight:      1.6,
		FooterLogoScale: 100,
	}
}

// LoadRenderDefaults reads an optional YAML override file named by
// RENDER_DEFAULTS_PATH. A missing or broken file falls back to the
// built-in values; layout tweaks must never block startup.
func LoadRenderDefaults(log *logger.Logger) RenderDefaults {
	defaults := DefaultRenderDefaults()

	path := strings.TrimSpace(os.Getenv("RENDER_DEFAULTS_PATH"))
	if path == "" {
		return defaults
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if log != nil {
			log.Warn("Render defaults file unreadable, using built-ins", "path", path, "error", err)
		}
		return defaults
	}
	if err := yaml.Unmarshal(raw, &defaults); err != nil {
		if log != nil {
			log.Warn("Render defaults file invalid, using built-ins", "path", path, "error", err)
		}
		return DefaultRenderDefaults()
	}
	if log != nil {
		log.Info("Render defaults loaded", "path", path)
	}
	return defaults
}
