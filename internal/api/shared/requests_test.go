package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    decodeTarget
		wantErr bool
	}{
		{
			name: "valid object",
			body: `{"name":"Байкал","link":"https://example.com/a.jpg"}`,
			want: decodeTarget{Name: "Байкал", Link: "https://example.com/a.jpg"},
		},
		{name: "empty body", body: "", wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "unknown field", body: `{"name":"x","owner":"y"}`, wantErr: true},
		{name: "trailing data", body: `{"name":"x"}{"name":"y"}`, wantErr: true},
		{name: "wrong type", body: `{"name":5}`, wantErr: true},
		{
			name:    "oversized",
			body:    `{"name":"` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/cards", strings.NewReader(tc.body))

			var got decodeTarget
			err := DecodeJSON(req, &got)

			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRequestBody))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

type validated struct {
	Name  string `json:"name"  validate:"required,min=2"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(validated{Name: "Жак", Email: "jacques@example.com"}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := ValidateRequest(validated{Name: "Жак", Email: "not-an-email"})
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		require.Len(t, verrs, 1)
		assert.Equal(t, "email", verrs[0].Field())
		assert.Equal(t, "email", verrs[0].Tag())
	})

	t.Run("custom Validate method wins", func(t *testing.T) {
		assert.EqualError(t, ValidateRequest(selfValidating{}), "self check failed")
	})
}

type selfValidating struct{}

func (selfValidating) Validate() error { return errors.New("self check failed") }
