// Package model defines the gift-entry data model shared by every other
// package: describe data types, field and object mappings, the batch field
// catalog entries an administrator picks from, the ordered selected fields of
// a template, and the per-section values collected when a form is submitted.
// Struct tags mirror the platform payloads (DeveloperName,
// Source_Field_API_Name, fieldMappingByDevName) so template documents and
// remote responses decode without an intermediate layer.
package model
