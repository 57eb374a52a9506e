// Package mapping holds the field mapping registry: the loaded form template
// plus the lookup from form field keys (mapping developer names) to the Data
// Import API names written on save.
//
// A Registry is an explicit value. Construct one per form session, call Load,
// then share it read-only with the save orchestrator and renderers.
package mapping
