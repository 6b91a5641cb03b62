// Package template defines the engine-agnostic template contract the HTML
// renderer depends on, with the concrete adapter living in the gotemplate
// subpackage.
package template
