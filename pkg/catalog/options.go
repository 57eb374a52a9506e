package catalog

import (
	"go.uber.org/zap"
)

// DefaultBatchObject is the schema listed by BatchFields.
const DefaultBatchObject = "DataImportBatch__c"

// DefaultImportObject is the schema gift entry records are written to and
// the usual target for picklist lookups.
const DefaultImportObject = "DataImport__c"

// Option customises a Catalog.
type Option func(*Catalog)

// WithBatchObject overrides the schema used for BatchFields.
func WithBatchObject(name string) Option {
	return func(c *Catalog) {
		if name != "" {
			c.batchObject = name
		}
	}
}

// WithExternalRefs allows the OpenAPI loader to follow external references.
func WithExternalRefs(allowed bool) Option {
	return func(c *Catalog) {
		c.externalRefs = allowed
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}
