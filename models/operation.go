package models

import (
	"fmt"
	"strconv"
)

// Widget names that map to the top level booleans of an operation instead of account values
const (
	FieldAutoRegistration = "autoRegistration"
	FieldAllowRecurrence  = "allowRecurrence"
)

// Operation is a charge or preset request posted to the operation link of a card
type Operation struct {
	URL  string        `json:"-"`
	Data OperationData `json:"-"`
}

// OperationData is the JSON body posted to the operation link
type OperationData struct {
	Account          map[string]string `json:"account,omitempty"`
	AutoRegistration *bool             `json:"autoRegistration,omitempty"`
	AllowRecurrence  *bool             `json:"allowRecurrence,omitempty"`
}

// NewOperation creates an empty operation for the given operation link
func NewOperation(url string) *Operation {
	return &Operation{
		URL:  url,
		Data: OperationData{Account: map[string]string{}},
	}
}

// PutValue stores the value collected for the named field
func (o *Operation) PutValue(name, value string) error {
	switch name {
	case FieldAutoRegistration, FieldAllowRecurrence:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for [%s]: [%w]", name, err)
		}
		if name == FieldAutoRegistration {
			o.Data.AutoRegistration = &b
		} else {
			o.Data.AllowRecurrence = &b
		}
	default:
		if name == "" {
			return fmt.Errorf("operation field name is empty")
		}
		o.Data.Account[name] = value
	}
	return nil
}
