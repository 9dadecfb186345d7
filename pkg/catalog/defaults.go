package catalog

import "github.com/goliatone/go-formbuilder/pkg/model"

func requiredRule() model.ValidationRule {
	return model.ValidationRule{
		Kind:    model.ValidationRequired,
		Message: "Field is required",
		Enabled: true,
	}
}

func defaultFields() []model.FieldTemplate {
	return []model.FieldTemplate{
		{
			Type:         model.FieldTypeText,
			Label:        "Text Field",
			Name:         "text",
			DefaultValue: model.String(""),
			Placeholder:  model.String(""),
			Validations: []model.ValidationRule{
				requiredRule(),
				{
					Kind:    model.ValidationMinLength,
					Bound:   model.Int(10),
					Message: "Min length is 10",
					Enabled: true,
				},
				{
					Kind:    model.ValidationMaxLength,
					Bound:   model.Int(50),
					Message: "Max length is 50",
					Enabled: true,
				},
			},
		},
		{
			Type:         model.FieldTypeRadio,
			Label:        "Radio Group",
			Name:         "radio-group",
			DefaultValue: model.String(""),
			Inline:       model.Bool(false),
			Options: []model.Option{
				{Label: "Option 1", Value: "option-1"},
				{Label: "Option 2", Value: "option-2"},
				{Label: "Option 3", Value: "option-3"},
			},
			Validations: []model.ValidationRule{requiredRule()},
		},
		{
			Type:   model.FieldTypeCheckbox,
			Label:  "Checkbox Group",
			Name:   "checkbox-group",
			Inline: model.Bool(false),
			Options: []model.Option{
				{Label: "Option 1", Value: "option-1", Selected: model.Bool(false)},
			},
			Validations: []model.ValidationRule{requiredRule()},
		},
		{
			Type:        model.FieldTypeSelect,
			Label:       "Select",
			Name:        "select",
			Placeholder: model.String(""),
			Multiple:    model.Bool(false),
			Options: []model.Option{
				{Label: "Option 1", Value: "option-1", Selected: model.Bool(false)},
				{Label: "Option 2", Value: "option-2", Selected: model.Bool(false)},
				{Label: "Option 3", Value: "option-3", Selected: model.Bool(false)},
			},
			Validations: []model.ValidationRule{requiredRule()},
		},
	}
}

func defaultActions() []model.ActionTemplate {
	return []model.ActionTemplate{
		{Kind: model.ActionSubmit, Label: "Submit"},
		{Kind: model.ActionCancel, Label: "Cancel"},
	}
}
