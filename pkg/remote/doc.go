// Package remote declares the platform collaborators the gift-entry packages
// depend on (template retrieval, the batch field catalog, picklist describes
// and record creation) together with the error types every remote boundary
// reports. Concrete implementations live in templates, catalog and records.
package remote
