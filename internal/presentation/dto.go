package presentation

import (
	"bytes"
	"encoding/json"

	"github.com/zjrosen/asana/internal/registration"
)

// BookingDTO represents an accepted booking for presentation
type BookingDTO struct {
	RequestID  string              `json:"request_id"`
	StatusCode int                 `json:"status_code"`
	Record     registration.Record `json:"record"`
	Response   any                 `json:"response,omitempty"` // decoded JSON when possible, raw text otherwise
}

// FieldErrorDTO represents one failing field
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SlotDTO represents a bookable time slot
type SlotDTO struct {
	Value string `json:"value"`
	Hours string `json:"hours"`
}

// OptionsDTO lists the accepted values for the select fields
type OptionsDTO struct {
	Genders []string  `json:"genders"`
	Slots   []SlotDTO `json:"slots"`
}

// FromConfirmation converts a booking confirmation to a DTO.
func FromConfirmation(conf registration.Confirmation) BookingDTO {
	dto := BookingDTO{
		RequestID:  conf.RequestID,
		StatusCode: conf.StatusCode,
		Record:     conf.Record,
	}
	if body := bytes.TrimSpace(conf.Body); len(body) > 0 {
		if json.Valid(body) {
			dto.Response = json.RawMessage(body)
		} else {
			dto.Response = string(body)
		}
	}
	return dto
}

// FromErrors converts validation errors to DTOs in form order.
func FromErrors(errs registration.Errors) []FieldErrorDTO {
	dtos := make([]FieldErrorDTO, 0, len(errs))
	for _, f := range registration.Fields {
		fe, ok := errs[f]
		if !ok {
			continue
		}
		dtos = append(dtos, FieldErrorDTO{
			Field:   string(f),
			Label:   f.Label(),
			Kind:    fe.Kind.String(),
			Message: fe.Message,
		})
	}
	return dtos
}

// Options returns the genders and slots a registration accepts.
func Options() OptionsDTO {
	dto := OptionsDTO{
		Genders: make([]string, 0, len(registration.Genders)),
		Slots:   make([]SlotDTO, 0, len(registration.Slots)),
	}
	for _, g := range registration.Genders {
		dto.Genders = append(dto.Genders, string(g))
	}
	for _, s := range registration.Slots {
		dto.Slots = append(dto.Slots, SlotDTO{Value: string(s), Hours: s.Hours()})
	}
	return dto
}
