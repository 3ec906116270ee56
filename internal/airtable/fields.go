package airtable

// Airtable exposes many more column types than the form builder can render.
// Unsupported types are dropped when browsing fields.
var fieldTypeMap = map[string]string{
	"singleLineText":      "shortText",
	"multilineText":       "longText",
	"singleSelect":        "singleSelect",
	"multipleSelects":     "multiSelect",
	"multipleAttachments": "attachment",
}

// MapFieldType maps an Airtable column type to a form question type.
// Returns "" for unsupported types.
func MapFieldType(airtableType string) string {
	return fieldTypeMap[airtableType]
}

// FieldChoiceNames flattens a select field's choices to their display names.
func FieldChoiceNames(field Field) []string {
	if field.Options == nil || len(field.Options.Choices) == 0 {
		return nil
	}

	names := make([]string, 0, len(field.Options.Choices))
	for _, choice := range field.Options.Choices {
		names = append(names, choice.Name)
	}
	return names
}
