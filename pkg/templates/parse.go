package templates

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-giftentry/pkg/model"
)

func parseWrapper(data []byte, source string) (model.RenderWrapper, error) {
	var wrapper model.RenderWrapper
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.RenderWrapper{}, fmt.Errorf("templates: document %s is empty", source)
	}

	if err := json.Unmarshal(data, &wrapper); err == nil {
		return wrapper, nil
	}

	wrapper = model.RenderWrapper{}
	if err := yaml.Unmarshal(data, &wrapper); err == nil {
		return wrapper, nil
	}

	return model.RenderWrapper{}, fmt.Errorf("templates: parse %s: invalid JSON or YAML", source)
}

// normaliseWrapper trims names, backfills developer names from map keys and
// rejects mappings that cannot be written on save.
func normaliseWrapper(raw model.RenderWrapper, source string) (model.RenderWrapper, error) {
	out := raw
	out.FormTemplate.Name = strings.TrimSpace(raw.FormTemplate.Name)
	if out.FormTemplate.Name == "" {
		return model.RenderWrapper{}, fmt.Errorf("templates: document %s defines a template without a name", source)
	}

	fields := make(map[string]model.FieldMapping, len(raw.MappingSet.FieldMappings))
	for key, mapping := range raw.MappingSet.FieldMappings {
		devName := strings.TrimSpace(key)
		if devName == "" {
			return model.RenderWrapper{}, fmt.Errorf("templates: template %q (%s) has a field mapping with an empty key", out.FormTemplate.Name, source)
		}
		if mapping.DevName == "" {
			mapping.DevName = devName
		}
		mapping.SourceAPIName = strings.TrimSpace(mapping.SourceAPIName)
		if mapping.SourceAPIName == "" {
			return model.RenderWrapper{}, fmt.Errorf("templates: template %q (%s) field mapping %q has no source API name", out.FormTemplate.Name, source, devName)
		}
		if mapping.DataType != "" {
			mapping.DataType, _ = model.ParseDataType(string(mapping.DataType))
		}
		fields[devName] = mapping
	}

	objects := make(map[string]model.ObjectMapping, len(raw.MappingSet.ObjectMappings))
	for key, mapping := range raw.MappingSet.ObjectMappings {
		devName := strings.TrimSpace(key)
		if devName == "" {
			return model.RenderWrapper{}, fmt.Errorf("templates: template %q (%s) has an object mapping with an empty key", out.FormTemplate.Name, source)
		}
		if mapping.DevName == "" {
			mapping.DevName = devName
		}
		objects[devName] = mapping
	}

	out.MappingSet = model.MappingSet{FieldMappings: fields, ObjectMappings: objects}
	out.FormTemplate.Layout.Sections = cloneSections(raw.FormTemplate.Layout.Sections)
	return out, nil
}

func cloneSections(sections []model.Section) []model.Section {
	if len(sections) == 0 {
		return nil
	}
	out := make([]model.Section, len(sections))
	for idx, section := range sections {
		out[idx] = section
		out[idx].Elements = append([]model.Element(nil), section.Elements...)
	}
	return out
}
