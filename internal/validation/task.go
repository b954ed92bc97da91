// Package validation turns raw task input into typed payloads or field errors.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	dom "tasktracker/internal/domain"
)

const TitleMaxLength = 255

const (
	msgRequired = "This field is required."
	msgNull     = "This field may not be null."
	msgBlank    = "This field may not be blank."
	msgInvalid  = "Not a valid string."
)

// Raw is undecoded key/value input, one JSON value per key.
type Raw map[string]json.RawMessage

// Errors maps a field name to human-readable reasons.
type Errors map[string][]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) add(field dom.Field, msg string) {
	e[string(field)] = append(e[string(field)], msg)
}

var validate = validator.New()

// per-field rules checked after whitespace trimming
var rules = map[dom.Field]string{
	dom.FieldTitle:   fmt.Sprintf("required,max=%d", TitleMaxLength),
	dom.FieldDueDate: "required",
	dom.FieldStatus:  "oneof=" + joinStatuses(),
}

func joinStatuses() string {
	parts := make([]string, len(dom.Statuses))
	for i, s := range dom.Statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

// Full validates a create or full-replace payload. Title is required; absent
// optional fields are null and an absent status defaults to pending. The
// returned Errors is nil when the input is valid.
func Full(raw Raw) (dom.TaskInput, Errors) {
	errs := Errors{}
	in := dom.TaskInput{Status: dom.StatusPending}

	if v, ok := raw[string(dom.FieldTitle)]; !ok {
		errs.add(dom.FieldTitle, msgRequired)
	} else if s, ok := readText(errs, dom.FieldTitle, v, false); ok {
		in.Title = *s
	}
	if v, ok := raw[string(dom.FieldDescription)]; ok {
		if s, ok := readText(errs, dom.FieldDescription, v, true); ok {
			in.Description = s
		}
	}
	if v, ok := raw[string(dom.FieldDueDate)]; ok {
		if s, ok := readText(errs, dom.FieldDueDate, v, true); ok {
			in.DueDate = s
		}
	}
	if v, ok := raw[string(dom.FieldStatus)]; ok {
		if s, ok := readText(errs, dom.FieldStatus, v, false); ok {
			in.Status = dom.Status(*s)
		}
	}

	if len(errs) > 0 {
		return dom.TaskInput{}, errs
	}
	return in, nil
}

// Partial validates only the fields present in raw. Nothing is required and
// no defaults are applied; an explicit null on a nullable field clears it.
func Partial(raw Raw) (dom.TaskFields, Errors) {
	errs := Errors{}
	var f dom.TaskFields

	for _, name := range dom.AllFields {
		v, ok := raw[string(name)]
		if !ok {
			continue
		}
		switch name {
		case dom.FieldTitle:
			if s, ok := readText(errs, name, v, false); ok {
				f.SetTitle(*s)
			}
		case dom.FieldDescription:
			if s, ok := readText(errs, name, v, true); ok {
				f.SetDescription(s)
			}
		case dom.FieldDueDate:
			if s, ok := readText(errs, name, v, true); ok {
				f.SetDueDate(s)
			}
		case dom.FieldStatus:
			if s, ok := readText(errs, name, v, false); ok {
				f.SetStatus(dom.Status(*s))
			}
		}
	}

	if len(errs) > 0 {
		return dom.TaskFields{}, errs
	}
	return f, nil
}

// readText decodes one field. A nil result with ok=true means an accepted null.
func readText(errs Errors, name dom.Field, v json.RawMessage, nullable bool) (*string, bool) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		if nullable {
			return nil, true
		}
		errs.add(name, msgNull)
		return nil, false
	}

	var s string
	switch v[0] {
	case '"':
		if err := json.Unmarshal(v, &s); err != nil {
			errs.add(name, msgInvalid)
			return nil, false
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		// numbers are accepted and kept as their literal text
		s = string(v)
	default:
		errs.add(name, msgInvalid)
		return nil, false
	}

	if name != dom.FieldStatus {
		s = strings.TrimSpace(s)
	}
	if tag, ok := rules[name]; ok {
		if err := validate.Var(s, tag); err != nil {
			errs.add(name, ruleMessage(err))
			return nil, false
		}
	}
	return &s, true
}

func ruleMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return msgInvalid
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return msgBlank
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fe.Value())
	}
	return msgInvalid
}

// FromForm builds Raw from submitted HTML form values. Optional fields left
// empty in the form are treated as absent.
func FromForm(values url.Values) Raw {
	raw := Raw{}
	for _, name := range dom.AllFields {
		key := string(name)
		if _, ok := values[key]; !ok {
			continue
		}
		v := values.Get(key)
		if name != dom.FieldTitle && strings.TrimSpace(v) == "" {
			continue
		}
		b, _ := json.Marshal(v)
		raw[key] = b
	}
	return raw
}
