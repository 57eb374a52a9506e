// Package template wraps a pongo2 template set behind a small rendering
// interface used by the HTML preview renderer.
package template
