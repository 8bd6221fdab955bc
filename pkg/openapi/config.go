package openapi

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config holds the document metadata published with the spec.
type Config struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Servers     []string `toml:"servers"`
}

// ConfigEnv maps environment variable names for OpenAPI metadata.
// Servers is read as a comma-separated list.
type ConfigEnv struct {
	Title       string
	Description string
	Servers     string
}

// Finalize applies defaults, loads environment overrides, and validates
// the server URLs.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-empty values from overlay. A servers list in the
// overlay replaces the base list.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Servers != nil {
		c.Servers = overlay.Servers
	}
}

// Spec starts a document from the configured metadata. primary is listed
// ahead of the configured servers and is not repeated.
func (c *Config) Spec(version, primary string) *Spec {
	spec := NewSpec(c.Title, version)
	spec.SetDescription(c.Description)
	spec.AddServer(primary)
	for _, s := range c.Servers {
		if s != primary {
			spec.AddServer(s)
		}
	}
	return spec
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "CMYK Lab API"
	}
	if c.Description == "" {
		c.Description = "Converts RGB JPEG and PNG images into LZW-compressed CMYK TIFF files for print workflows."
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if v := lookup(env.Title); v != "" {
		c.Title = v
	}
	if v := lookup(env.Description); v != "" {
		c.Description = v
	}
	if v := lookup(env.Servers); v != "" {
		c.Servers = nil
		for s := range strings.SplitSeq(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.Servers = append(c.Servers, s)
			}
		}
	}
}

func (c *Config) validate() error {
	for _, s := range c.Servers {
		u, err := url.Parse(s)
		if err != nil {
			return fmt.Errorf("invalid server url %q: %w", s, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("server url must be absolute http(s): %s", s)
		}
	}
	return nil
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
