// Package templates provides remote.TemplateService implementations: a Store
// built from JSON/YAML render wrapper documents in an fs.FS, and an HTTP
// service that fetches wrappers from a template endpoint.
package templates
