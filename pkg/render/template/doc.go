// Package template defines the template engine seam shared by the page and
// document renderers. The default implementation lives in the gotemplate
// subpackage and is backed by pongo2.
package template
