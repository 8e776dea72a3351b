// Package form holds the submission schemas shared by the editor pages and
// their actions. Parsing accumulates every failing field so a response can
// surface all problems at once, and parsed forms echo the submitted values
// back for re-display.
package form

import (
	"net/url"
	"strconv"

	"github.com/vbonduro/foodventory/internal/domain"
)

// Errors maps field names to their validation messages.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field failed validation.
func (e Errors) Any() bool {
	return len(e) > 0
}

// ItemEditor is the item upsert submission. An empty ID selects the create
// path; a non-empty ID selects the update path.
type ItemEditor struct {
	ID           string
	Title        string
	Content      string
	Quantity     string
	QuantityUnit string
}

// ParseItemEditor validates an item editor submission. Quantity must parse as
// a number but is deliberately not range-checked; zero and negative values
// pass.
func ParseItemEditor(values url.Values) (ItemEditor, Errors) {
	f := ItemEditor{
		ID:           values.Get("id"),
		Title:        values.Get("title"),
		Content:      values.Get("content"),
		Quantity:     values.Get("quantity"),
		QuantityUnit: values.Get("quantityUnit"),
	}

	errs := Errors{}
	if f.Title == "" {
		errs.Add("title", "Required")
	}
	if f.Quantity == "" {
		errs.Add("quantity", "Required")
	} else if _, err := strconv.ParseFloat(f.Quantity, 64); err != nil {
		errs.Add("quantity", "Must be a number")
	}
	if f.QuantityUnit == "" {
		errs.Add("quantityUnit", "Required")
	} else if !domain.IsQuantityUnit(f.QuantityUnit) {
		errs.Add("quantityUnit", "Invalid quantity unit")
	}
	return f, errs
}

// PantryEditor is the pantry upsert submission.
type PantryEditor struct {
	ID    string
	Title string
}

func ParsePantryEditor(values url.Values) (PantryEditor, Errors) {
	f := PantryEditor{
		ID:    values.Get("id"),
		Title: values.Get("title"),
	}

	errs := Errors{}
	if f.Title == "" {
		errs.Add("title", "Required")
	}
	return f, errs
}

// Signup is the account registration submission.
type Signup struct {
	Username string
	Name     string
	Password string
}

func ParseSignup(values url.Values) (Signup, Errors) {
	f := Signup{
		Username: values.Get("username"),
		Name:     values.Get("name"),
		Password: values.Get("password"),
	}

	errs := Errors{}
	if f.Username == "" {
		errs.Add("username", "Required")
	}
	if f.Password == "" {
		errs.Add("password", "Required")
	} else if len(f.Password) < 6 {
		errs.Add("password", "Must be at least 6 characters")
	}
	return f, errs
}

// Login is the credential submission.
type Login struct {
	Username string
	Password string
}

func ParseLogin(values url.Values) (Login, Errors) {
	f := Login{
		Username: values.Get("username"),
		Password: values.Get("password"),
	}

	errs := Errors{}
	if f.Username == "" {
		errs.Add("username", "Required")
	}
	if f.Password == "" {
		errs.Add("password", "Required")
	}
	return f, errs
}
