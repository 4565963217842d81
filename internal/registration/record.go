// Package registration holds the booking form's record, its validation schema
// and the controller that drives a single form through its submission lifecycle.
package registration

import (
	"strings"
)

// Field names a form field. The string value doubles as the JSON key.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldMobile    Field = "mobile"
	FieldEmail     Field = "email"
	FieldAge       Field = "age"
	FieldGender    Field = "gender"
	FieldSlot      Field = "slot"
)

// Fields lists every field in display order.
var Fields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldMobile,
	FieldAge,
	FieldGender,
	FieldSlot,
}

// Label returns the human-readable field name.
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldMobile:
		return "Mobile No."
	case FieldEmail:
		return "Email"
	case FieldAge:
		return "Age"
	case FieldGender:
		return "Gender"
	case FieldSlot:
		return "Slot"
	}
	return string(f)
}

// ParseField resolves a field by its JSON key.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Gender is one of the enumerated gender options.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists the accepted gender values.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Slot is a preferred class time.
type Slot string

const (
	SlotMorning   Slot = "Morning"
	SlotAfternoon Slot = "Afternoon"
	SlotEvening   Slot = "Evening"
	SlotNight     Slot = "Night"
)

// Slots lists the accepted slot values.
var Slots = []Slot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

// Hours returns the class hours for the slot, or "" for unknown slots.
func (s Slot) Hours() string {
	switch s {
	case SlotMorning:
		return "6-7 AM"
	case SlotAfternoon:
		return "12-1 PM"
	case SlotEvening:
		return "5-6 PM"
	case SlotNight:
		return "8-9 PM"
	}
	return ""
}

// Draft is the record as entered: every value is kept as typed text.
// The zero Draft is the empty form.
type Draft struct {
	FirstName string
	LastName  string
	Mobile    string
	Email     string
	Age       string
	Gender    string
	Slot      string
}

// Get returns the current value of a field.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return d.FirstName
	case FieldLastName:
		return d.LastName
	case FieldMobile:
		return d.Mobile
	case FieldEmail:
		return d.Email
	case FieldAge:
		return d.Age
	case FieldGender:
		return d.Gender
	case FieldSlot:
		return d.Slot
	}
	return ""
}

// Set returns a copy of the draft with one field replaced.
// Unknown fields leave the draft unchanged.
func (d Draft) Set(f Field, value string) Draft {
	switch f {
	case FieldFirstName:
		d.FirstName = value
	case FieldLastName:
		d.LastName = value
	case FieldMobile:
		d.Mobile = value
	case FieldEmail:
		d.Email = value
	case FieldAge:
		d.Age = value
	case FieldGender:
		d.Gender = value
	case FieldSlot:
		d.Slot = value
	}
	return d
}

// Record converts a valid draft into the typed booking payload.
// It returns the validation Errors when the draft is not submittable.
func (d Draft) Record() (Record, error) {
	if errs := Validate(d); len(errs) > 0 {
		return Record{}, errs
	}
	age, _ := parseAge(d.Age)
	return Record{
		FirstName: strings.TrimSpace(d.FirstName),
		LastName:  strings.TrimSpace(d.LastName),
		Mobile:    strings.TrimSpace(d.Mobile),
		Email:     strings.TrimSpace(d.Email),
		Age:       age,
		Gender:    Gender(strings.TrimSpace(d.Gender)),
		Slot:      Slot(strings.TrimSpace(d.Slot)),
	}, nil
}

// Record is the JSON body sent to the booking endpoint.
type Record struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Gender    Gender `json:"gender"`
	Slot      Slot   `json:"slot"`
}
