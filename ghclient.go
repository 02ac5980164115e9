package main

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/github"
)

const githubAPI = "https://api.github.com/"

type githubClient struct {
	logger logger
	client *github.Client
	http   *http.Client
	owner  string
	name   string
	ref    string
}

func newGitHubClient(logger logger, apiURL, repoURL, ref string) (*githubClient, error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}

	p := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")
	if len(p) != 3 || p[1] == "" || p[2] == "" {
		return nil, errors.New("invalid repo url, should be just github.com/{owner}/{name}")
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	client := github.NewClient(httpClient)
	if apiURL != "" {
		base, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse api url: %w", err)
		}
		client.BaseURL = base
	}

	if ref == "" {
		ref = "main"
	}

	logger.Debug("github repository", "owner", p[1], "name", p[2], "ref", ref)
	return &githubClient{
		logger: logger,
		client: client,
		http:   httpClient,
		owner:  p[1],
		name:   p[2],
		ref:    ref,
	}, nil
}

// LastHash returns the commit SHA at the head of the configured branch.
func (g *githubClient) LastHash(ctx context.Context) (string, error) {
	branch, _, err := g.client.Repositories.GetBranch(ctx, g.owner, g.name, g.ref)
	if err != nil {
		return "", fmt.Errorf("failed to get branch %s: %w", g.ref, err)
	}

	sha := branch.GetCommit().GetSHA()
	if sha == "" {
		return "", fmt.Errorf("branch %s has no commit", g.ref)
	}

	g.logger.Debug("last hash", "ref", g.ref, "sha", sha)
	return sha, nil
}

// Contents downloads the zipball of the configured branch. The returned file
// system is rooted at the archive, which holds a single top-level directory.
func (g *githubClient) Contents(ctx context.Context) (fs.FS, error) {
	link, _, err := g.client.Repositories.GetArchiveLink(ctx, g.owner, g.name, github.Zipball,
		&github.RepositoryContentGetOptions{Ref: g.ref})
	if err != nil {
		return nil, fmt.Errorf("failed to get archive link: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "blogsmith")

	g.logger.Debug("downloading zipball", "url", link.String())
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	g.logger.Debug("zipball downloaded", "bytes", len(b))
	r, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	return r, nil
}
