package main

import (
	"fmt"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blogsmith",
		Short: "Build a static blog from Markdown posts",
		Long: `blogsmith renders every blog/<slug>/<name>.md into blog/<slug>/index.html
using templates/blog.html, then renders pages/index.html into a top-level
index.html listing every post.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", defaultConfigFile, "site config file")
	cmd.PersistentFlags().String("root", "", "site root directory (overrides config)")
	cmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("log-format", "", "log format: console, json, pretty")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Render every post and the site index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, root, err := commandSetup(cmd)
			if err != nil {
				return err
			}

			b, err := newBuilder(root.GetLogger("build"), cfg)
			if err != nil {
				return err
			}

			_, err = b.Build()
			return err
		},
	}
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Check out a GitHub repository into the site root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, root, err := commandSetup(cmd)
			if err != nil {
				return err
			}
			if cfg.GitHub.Repo == "" {
				return fmt.Errorf("repo url is required")
			}

			r, err := newRemoteRepo(root.GetLogger("github"), cfg)
			if err != nil {
				return err
			}

			_, err = r.Sync(cmd.Context())
			return err
		},
	}
	addGitHubFlags(cmd)
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the site and serve it over HTTP",
		Long: `serve builds the site once and serves the site root. With --repo it first
checks the repository out and then polls it, rebuilding after every new commit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, root, err := commandSetup(cmd)
			if err != nil {
				return err
			}

			var r *repo
			if cfg.GitHub.Repo != "" {
				r, err = newRemoteRepo(root.GetLogger("github"), cfg)
				if err != nil {
					return err
				}
			}

			buildLogger := root.GetLogger("build")
			build := func() ([]Post, error) {
				b, err := newBuilder(buildLogger, cfg)
				if err != nil {
					return nil, err
				}
				return b.Build()
			}

			return newSite(root.GetLogger("serve"), cfg, build, r).Serve(cmd.Context())
		},
	}
	addGitHubFlags(cmd)
	cmd.Flags().String("addr", "", "address to listen on (overrides config)")
	cmd.Flags().Duration("interval", 0, "how often to poll the repository (overrides config)")
	return cmd
}

func addGitHubFlags(cmd *cobra.Command) {
	cmd.Flags().String("repo", "", "GitHub repository url, https://github.com/{owner}/{name}")
	cmd.Flags().String("ref", "", "branch to check out")
	cmd.Flags().String("api-url", "", "GitHub API base url")
}

func newRemoteRepo(logger logger, cfg config) (*repo, error) {
	client, err := newGitHubClient(logger, cfg.GitHub.APIURL, cfg.GitHub.Repo, cfg.GitHub.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to create github client: %w", err)
	}
	return newRepo(logger, client, cfg.Root), nil
}

// commandSetup loads the site config, applies flag overrides and builds the
// root logger.
func commandSetup(cmd *cobra.Command) (config, *glog.BaseLogger, error) {
	flags := cmd.Flags()

	filename, _ := flags.GetString("config")
	cfg, err := loadConfig(filename, flags.Changed("config"))
	if err != nil {
		return cfg, nil, err
	}

	overrides := map[string]*string{
		"root":       &cfg.Root,
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
		"repo":       &cfg.GitHub.Repo,
		"ref":        &cfg.GitHub.Ref,
		"api-url":    &cfg.GitHub.APIURL,
		"addr":       &cfg.Serve.Addr,
	}
	for name, field := range overrides {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		*field, _ = flags.GetString(name)
	}
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		cfg.Serve.Interval, _ = flags.GetDuration("interval")
	}

	if err := cfg.validate(); err != nil {
		return cfg, nil, fmt.Errorf("invalid config: %w", err)
	}

	root, err := newRootLogger(cfg.Log)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, root, nil
}
