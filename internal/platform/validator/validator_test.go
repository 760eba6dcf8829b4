package validator

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"notblank"`
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(contactForm{Email: "a@b.com", Message: "oi", Rating: 3}))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	err := Validate(contactForm{Email: "nope", Message: "   ", Rating: 9})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	fields := ve.Fields()
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must not be blank", fields["message"])
	assert.Equal(t, "must be less than or equal to 5", fields["rating"])
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader("{"))
	var dst contactForm

	err := DecodeAndValidate(r, &dst)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
