package main

import "fmt"

// IOError reports a failed open, read or write of a site file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// TemplateError reports a template that could not be loaded or rendered.
type TemplateError struct {
	Op   string // "load" or "render"
	Name string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("failed to %s template %s: %v", e.Op, e.Name, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// MetadataError reports a source file whose creation time is unavailable.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("failed to read creation time of %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// DiscoveryError reports a glob pattern that could not be enumerated.
type DiscoveryError struct {
	Pattern string
	Err     error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("failed to discover posts with %q: %v", e.Pattern, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }
