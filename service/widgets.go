package service

import (
	"strconv"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/checkout"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/lang"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/network"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/validation"
)

const defaultInvalidValue = "Invalid value"

// fieldWidget collects the text value of one input element
type fieldWidget struct {
	code      string
	name      string
	value     string
	validator *validation.Validator
	lang      *lang.File
	errors    map[string]string
}

func (w *fieldWidget) Name() string { return w.name }

func (w *fieldWidget) Validate() bool {
	if w.validator.Validate(w.code, w.name, w.value) {
		return true
	}
	msg := w.lang.Error(w.name)
	if msg == "" {
		msg = defaultInvalidValue
	}
	w.errors[w.name] = msg
	return false
}

// PutValue stores non empty values only
func (w *fieldWidget) PutValue(op *models.Operation) error {
	if w.value == "" {
		return nil
	}
	return op.PutValue(w.name, w.value)
}

// checkboxWidget collects one of the boolean options of an operation
type checkboxWidget struct {
	name   string
	value  string
	errors map[string]string
}

func (w *checkboxWidget) Name() string { return w.name }

func (w *checkboxWidget) Validate() bool {
	if _, err := strconv.ParseBool(w.value); err != nil {
		w.errors[w.name] = defaultInvalidValue
		return false
	}
	return true
}

func (w *checkboxWidget) PutValue(op *models.Operation) error {
	return op.PutValue(w.name, w.value)
}

// newWidgets creates a widget per input element of card holding the submitted value,
// followed by the boolean options present in values. Validation errors are written to errors.
func newWidgets(card network.Card, values map[string]string, v *validation.Validator, errors map[string]string) []checkout.FormWidget {
	var widgets []checkout.FormWidget

	for _, e := range card.InputElements() {
		widgets = append(widgets, &fieldWidget{
			code:      card.Code(),
			name:      e.Name,
			value:     values[e.Name],
			validator: v,
			lang:      card.Lang(),
			errors:    errors,
		})
	}
	for _, name := range []string{models.FieldAutoRegistration, models.FieldAllowRecurrence} {
		if value, ok := values[name]; ok {
			widgets = append(widgets, &checkboxWidget{name: name, value: value, errors: errors})
		}
	}
	return widgets
}
