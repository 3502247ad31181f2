// Package template defines the template rendering seam used by the studio
// page. The gotemplate subpackage provides the pongo2-backed engine that
// mirrors the github.com/goliatone/go-template contract.
package template
