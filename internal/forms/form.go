// Package forms describes the console's edit screens and validates what they
// post before anything reaches the API.
package forms

import (
	"net/url"
	"strings"
)

type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindNumber   Kind = "number"
	KindTextarea Kind = "textarea"
	KindRichText Kind = "richtext"
	KindSelect   Kind = "select"
	KindMulti    Kind = "multi"
	KindCheckbox Kind = "checkbox"
	KindFile     Kind = "file"
	KindHidden   Kind = "hidden"
)

type Option struct {
	Value string
	Label string
}

func options(values []string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}

// Field is one input on a form screen.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Value    string
	Values   []string
	Options  []Option
	Error    string
	Help     string
	Accept   string
	Required bool
	Disabled bool
	Multiple bool
}

// Selected reports whether v is the current value (or one of the values).
func (f Field) Selected(v string) bool {
	if f.Value == v {
		return true
	}
	for _, s := range f.Values {
		if s == v {
			return true
		}
	}
	return false
}

// Checked is for checkbox fields.
func (f Field) Checked() bool {
	return isTruthy(f.Value)
}

// Form is rendered by the generic form template.
type Form struct {
	Title     string
	Action    string
	Cancel    string
	Submit    string
	Multipart bool
	Fields    []Field
}

func (f *Form) Field(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// HasRichText reports whether the form offers a preview.
func (f Form) HasRichText() bool {
	for _, field := range f.Fields {
		if field.Kind == KindRichText {
			return true
		}
	}
	return false
}

// HasErrors reports whether any field carries an inline error.
func (f Form) HasErrors() bool {
	for _, field := range f.Fields {
		if field.Error != "" {
			return true
		}
	}
	return false
}

// fill copies posted (or stored) values and errors onto the descriptors.
// Disabled fields keep whatever value the builder computed.
func fill(values url.Values, errs Errors, fields []Field) []Field {
	for i := range fields {
		f := &fields[i]
		if msg, ok := errs[f.Name]; ok {
			f.Error = msg
		}
		if f.Disabled || f.Kind == KindFile || f.Kind == KindPassword {
			continue
		}
		if f.Kind == KindMulti {
			f.Values = values[f.Name]
			continue
		}
		f.Value = values.Get(f.Name)
	}
	return fields
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
