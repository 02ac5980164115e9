package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// site serves a built site and, when a remote repo is configured, keeps it
// in sync by rebuilding after every new commit.
type site struct {
	logger   logger
	cfg      config
	build    func() ([]Post, error)
	repo     *repo
	files    http.Handler
	building sync.Mutex
}

// newSite serves cfg.Root. build runs one full build; it is called once at
// start and again after every sync that brought in changes. r may be nil.
func newSite(logger logger, cfg config, build func() ([]Post, error), r *repo) *site {
	return &site{
		logger: logger,
		cfg:    cfg,
		build:  build,
		repo:   r,
		files:  http.FileServer(http.Dir(cfg.Root)),
	}
}

func (s *site) Serve(ctx context.Context) error {
	if s.repo != nil {
		if _, err := s.repo.Sync(ctx); err != nil {
			return fmt.Errorf("failed to sync repo: %w", err)
		}
	}

	if err := s.rebuild(); err != nil {
		return fmt.Errorf("failed to build site: %w", err)
	}

	server := &http.Server{
		Addr:    s.cfg.Serve.Addr,
		Handler: s,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting server", "addr", s.cfg.Serve.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if s.repo != nil && s.cfg.Serve.Interval > 0 {
		g.Go(func() error {
			s.syncLoop(ctx)
			return nil
		})
	}

	return g.Wait()
}

func (s *site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		http.ServeFile(w, r, filepath.Join(s.cfg.Root, s.cfg.IndexOutput))
		return
	}
	s.files.ServeHTTP(w, r)
}

// syncLoop polls the remote repo. Sync and build errors are logged and the
// loop carries on with the next tick.
func (s *site) syncLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Serve.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := s.repo.Sync(ctx)
			if err != nil {
				s.logger.Error("failed to sync repo", "error", err)
				continue
			}
			if !changed {
				continue
			}
			if err := s.rebuild(); err != nil {
				s.logger.Error("failed to rebuild site", "error", err)
			}
		}
	}
}

func (s *site) rebuild() error {
	s.building.Lock()
	defer s.building.Unlock()

	posts, err := s.build()
	if err != nil {
		return err
	}
	s.logger.Info("site built", "posts", len(posts))
	return nil
}
