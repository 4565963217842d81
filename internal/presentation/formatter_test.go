package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/asana/internal/registration"
)

func TestFormatBooking_JSONResponseIsEmbedded(t *testing.T) {
	var buf bytes.Buffer
	conf := registration.Confirmation{
		RequestID:  "req-1",
		StatusCode: 201,
		Body:       []byte(`{"message":"created"}`),
		Record:     registration.Record{FirstName: "Asha", Age: 30, Slot: registration.SlotNight},
	}

	require.NoError(t, NewFormatter(&buf).FormatBooking(FromConfirmation(conf)))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "req-1", got["request_id"])
	require.Equal(t, map[string]any{"message": "created"}, got["response"])
	require.Equal(t, "Night", got["record"].(map[string]any)["slot"])
}

func TestFromConfirmation_TextResponse(t *testing.T) {
	dto := FromConfirmation(registration.Confirmation{Body: []byte("OK\n")})
	require.Equal(t, "OK", dto.Response)

	dto = FromConfirmation(registration.Confirmation{})
	require.Nil(t, dto.Response)
}

func TestFromErrors_FormOrder(t *testing.T) {
	errs := registration.Validate(registration.Draft{FirstName: "Asha", Mobile: "123"})

	dtos := FromErrors(errs)

	require.NotEmpty(t, dtos)
	require.Equal(t, "lastName", dtos[0].Field)
	require.Equal(t, "Last Name is required", dtos[0].Message)
	require.Equal(t, "email", dtos[1].Field)
	require.Equal(t, "mobile", dtos[2].Field)
	require.Equal(t, "InvalidFormat", dtos[2].Kind)
}

func TestFormatOptions(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf).FormatOptions(Options()))

	out := buf.String()
	require.Contains(t, out, `"Female"`)
	require.Contains(t, out, `"value": "Morning"`)
	require.Contains(t, out, `"hours": "6-7 AM"`)
}
