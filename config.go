package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "site.yaml"

type config struct {
	Root        string         `yaml:"root"`
	Posts       string         `yaml:"posts"`
	PageName    string         `yaml:"page_name"`
	IndexOutput string         `yaml:"index_output"`
	Templates   templateConfig `yaml:"templates"`
	Log         logConfig      `yaml:"log"`
	GitHub      githubConfig   `yaml:"github"`
	Serve       serveConfig    `yaml:"serve"`
}

type templateConfig struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
	Post    string `yaml:"post"`
	Index   string `yaml:"index"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type githubConfig struct {
	Repo   string `yaml:"repo"`
	Ref    string `yaml:"ref"`
	APIURL string `yaml:"api_url"`
}

type serveConfig struct {
	Addr     string        `yaml:"addr"`
	Interval time.Duration `yaml:"interval"`
}

func defaultConfig() config {
	return config{
		Root:        ".",
		Posts:       "blog/*/*.md",
		PageName:    "index.html",
		IndexOutput: "index.html",
		Templates: templateConfig{
			Dir:     "templates",
			Pattern: "*.html",
			Post:    "blog.html",
			Index:   "pages/index.html",
		},
		Log: logConfig{
			Level:  "info",
			Format: "console",
		},
		GitHub: githubConfig{
			Ref:    "main",
			APIURL: githubAPI,
		},
		Serve: serveConfig{
			Addr:     ":8080",
			Interval: 5 * time.Minute,
		},
	}
}

// loadConfig reads filename over the defaults. When explicit is false a
// missing file is not an error.
func loadConfig(filename string, explicit bool) (config, error) {
	cfg := defaultConfig()

	b, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config file %s: %w", filename, err)
	}

	return cfg, nil
}

func (c config) validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return errors.New("root must not be empty")
	}
	if strings.TrimSpace(c.Posts) == "" {
		return errors.New("posts pattern must not be empty")
	}
	for field, name := range map[string]string{
		"page_name":    c.PageName,
		"index_output": c.IndexOutput,
	} {
		if name == "" || path.Base(name) != name {
			return fmt.Errorf("%s must be a plain file name, got %q", field, name)
		}
	}
	if c.Templates.Dir == "" || c.Templates.Pattern == "" || c.Templates.Post == "" || c.Templates.Index == "" {
		return errors.New("templates.dir, templates.pattern, templates.post and templates.index are required")
	}
	if c.Serve.Interval < 0 {
		return fmt.Errorf("serve.interval must not be negative, got %s", c.Serve.Interval)
	}
	return nil
}
