// Package catalog exposes object describe metadata from an OpenAPI document.
//
// Each schema under components.schemas is treated as a platform object and
// each of its properties as a field. Vendor extensions carry what plain JSON
// Schema cannot express:
//
//	x-describe-type       explicit describe type (CURRENCY, PERCENT, PHONE...)
//	x-enum-labels         display labels keyed by enum value
//	x-record-type-values  enum subsets keyed by record type id
//
// A Catalog implements remote.CatalogService for the batch object and
// remote.DescribeService for picklist lookups on any object.
package catalog
