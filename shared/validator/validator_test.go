package validator_test

import (
	"hotelbook/shared/failure"
	"hotelbook/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingRequest struct {
	RoomID     string `json:"room_id"     validate:"required"`
	CheckIn    string `json:"check_in"    validate:"required,calendardate"`
	CheckOut   string `json:"check_out"   validate:"required,calendardate"`
	GuestCount int    `json:"guest_count" validate:"gte=1,lte=10"`
	Role       string `json:"role"        validate:"omitempty,oneof=customer owner"`
	Email      string `json:"-"           validate:"omitempty,email"`
}

func validBooking() bookingRequest {
	return bookingRequest{RoomID: "room-1", CheckIn: "2030-01-10", CheckOut: "2030-01-14", GuestCount: 2}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *bookingRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(_ *bookingRequest) {}},
		{name: "missing room", mutate: func(r *bookingRequest) { r.RoomID = "" }, wantMsg: "room_id is required"},
		{name: "bad date", mutate: func(r *bookingRequest) { r.CheckIn = "10/01/2030" }, wantMsg: "check_in must be a date formatted as YYYY-MM-DD"},
		{name: "no guests", mutate: func(r *bookingRequest) { r.GuestCount = 0 }, wantMsg: "guest_count must be greater than or equal to 1"},
		{name: "too many guests", mutate: func(r *bookingRequest) { r.GuestCount = 11 }, wantMsg: "guest_count must be less than or equal to 10"},
		{name: "unknown role", mutate: func(r *bookingRequest) { r.Role = "admin" }, wantMsg: "role must be one of customer owner"},
		{name: "field without json name", mutate: func(r *bookingRequest) { r.Email = "nope" }, wantMsg: "Email must be a valid email address"},
		{
			name: "every failure reported",
			mutate: func(r *bookingRequest) {
				r.RoomID = ""
				r.CheckOut = ""
			},
			wantMsg: "room_id is required; check_out is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBooking()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"room_id":"room-1","check_in":"2030-01-10","check_out":"2030-01-14","guest_count":2}`},
		{name: "invalid field", body: `{"room_id":"room-1","check_in":"2030-01-10","check_out":"2030-01-14","guest_count":0}`, wantErr: true},
		{name: "malformed json", body: `{"room_id":}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
		{name: "trailing object", body: `{"room_id":"room-1","check_in":"2030-01-10","check_out":"2030-01-14","guest_count":2} {}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req bookingRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, validBooking(), req)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "required present", field: "Lisbon", tag: "required"},
		{name: "required missing", field: "", tag: "required", wantErr: true},
		{name: "email", field: "guest@example.com", tag: "email"},
		{name: "bad email", field: "guest-at-example", tag: "email", wantErr: true},
		{name: "rating in range", field: 4.5, tag: "gte=0,lte=5"},
		{name: "rating out of range", field: 6.0, tag: "gte=0,lte=5", wantErr: true},
		{name: "role", field: "owner", tag: "oneof=customer owner"},
		{name: "unknown role", field: "admin", tag: "oneof=customer owner", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			assert.Equal(t, tt.wantErr, err != nil, "unexpected result: %v", err)
		})
	}
}

func TestCalendarDateValidation(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: "2030-02-28"},
		{value: "2028-02-29"},
		{value: "2027-02-29", wantErr: true},
		{value: "2030-02-28T10:00:00Z", wantErr: true},
		{value: "28-02-2030", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := validator.ValidateVar(tt.value, "calendardate")

			assert.Equal(t, tt.wantErr, err != nil, "unexpected result: %v", err)
		})
	}
}

func TestImageValidation(t *testing.T) {
	png := "data:image/png;base64,iVBORw0KGgo="

	assert.NoError(t, validator.ValidateVar(png, "mimetypes=image/png image/jpeg"))
	assert.Error(t, validator.ValidateVar("data:application/pdf;base64,JVBERi0=", "mimetypes=image/png image/jpeg"))
	assert.Error(t, validator.ValidateVar("not a data url", "mimetypes=image/png"))

	assert.NoError(t, validator.ValidateVar(png, "maxfilesize=1"))

	large := "data:image/png;base64," + strings.Repeat("A", 2*1024*1024)
	err := validator.ValidateVar(large, "maxfilesize=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not exceed 1 MB")
}
