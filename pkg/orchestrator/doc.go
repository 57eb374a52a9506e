// Package orchestrator turns the values collected by rendered form sections
// into a Data Import record payload and submits it to the record-create
// service.
//
// Typical usage:
//
//	registry := mapping.New(mapping.WithTemplateService(store))
//	if err := registry.Load(ctx); err != nil {
//		return err
//	}
//	orch := orchestrator.New(
//		orchestrator.WithRegistry(registry),
//		orchestrator.WithRecordService(records.NewMemory()),
//	)
//	id, err := orch.Save(ctx, sections)
//
// Sections are merged in slice order, so a key collected by a later section
// replaces the same key from an earlier one.
package orchestrator
