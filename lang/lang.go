// Package lang holds the localization tables downloaded from the payment list API.
package lang

import (
	"fmt"

	"github.com/magiconair/properties"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
)

// Hint types of an account field
const (
	Title = "title"
	Text  = "text"
)

// File is a flat key to string localization table. A nil File translates nothing.
type File struct {
	entries map[string]string
}

// New creates an empty localization table
func New() *File {
	return &File{entries: map[string]string{}}
}

// Parse reads a localization table in java properties format
func Parse(data string) (*File, error) {
	p, err := properties.LoadString(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing language file: [%w]", err)
	}
	return &File{entries: p.Map()}, nil
}

// FromMap creates a localization table holding a copy of entries
func FromMap(entries map[string]string) *File {
	f := New()
	for k, v := range entries {
		f.entries[k] = v
	}
	return f
}

// Translate returns the value for key or def when absent
func (f *File) Translate(key, def string) string {
	if f == nil || key == "" {
		return def
	}
	if v, ok := f.entries[key]; ok {
		return v
	}
	return def
}

// TranslateInteraction returns the message registered for the code and reason of interaction
func (f *File) TranslateInteraction(interaction models.Interaction) string {
	return f.Translate("interaction."+interaction.Code+"."+interaction.Reason, "")
}

// Error returns the localized error message for key
func (f *File) Error(key string) string {
	return f.Translate("error."+key, "")
}

// AccountLabel returns the localized label of the named account field
func (f *File) AccountLabel(key string) string {
	return f.Translate("account."+key+".label", "")
}

// AccountHint returns the hint of the given type for the named account field
func (f *File) AccountHint(key, hintType string) string {
	return f.Translate("account."+key+".hint.where."+hintType, "")
}

// ContainsAccountHint reports whether the named account field has a hint title
func (f *File) ContainsAccountHint(key string) bool {
	return f.AccountHint(key, Title) != ""
}

// Len returns the number of entries
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.entries)
}
