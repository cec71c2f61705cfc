package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitValidators(t *testing.T) {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)

	type payload struct {
		Title string  `json:"title" validate:"notblank"`
		Note  *string `json:"note" validate:"omitempty,notblank"`
		Ref   string  `json:"ref" validate:"required"`
	}
	blank := "   "

	tests := []struct {
		name    string
		data    payload
		wantErr map[string]string
	}{
		{name: "valid", data: payload{Title: "Go", Ref: "x"}},
		{
			name: "blank title",
			data: payload{Title: " \t", Ref: "x"},
			wantErr: map[string]string{"title": "this field cannot be blank"},
		},
		{
			name: "blank pointer & missing required",
			data: payload{Title: "Go", Note: &blank},
			wantErr: map[string]string{
				"note": "this field cannot be blank",
				"ref":  "this field is required",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.data)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)
			got := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				got[fe.Field()] = fe.Translate(translator)
			}
			assert.Equal(t, tt.wantErr, got)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "", ValidationError{}.Error())
	assert.Equal(t, "title: too short", ValidationError{Fields: []FieldError{{Field: "title", Error: "too short"}}}.Error())
}
