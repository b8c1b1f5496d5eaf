package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashwanthu-lab/docfields/internal/common"
	"github.com/yashwanthu-lab/docfields/internal/schema"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Here you go:\n```json\n{\"a\":1}\n```\nDone.", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripCodeFences(tc.in), "input %q", tc.in)
	}
}

func identityJSON() string {
	return `{
		"name": "RAMESH KUMAR",
		"aadhaar_number": "1234 5678 9012",
		"date_of_birth": "01/01/1990",
		"gender": "Male",
		"address": "Not Available"
	}`
}

func TestDecodeFieldsOK(t *testing.T) {
	res, err := DecodeFields(schema.Identity(), []byte(identityJSON()))
	require.NoError(t, err)
	assert.Equal(t, "RAMESH KUMAR", res["name"])
	assert.Equal(t, "Not Available", res["address"])
	assert.Len(t, res, len(schema.Identity().Fields))
}

func TestDecodeFieldsMalformed(t *testing.T) {
	_, err := DecodeFields(schema.Identity(), []byte("this is not json"))
	assert.ErrorIs(t, err, common.ErrMalformedResponse)
}

func TestDecodeFieldsMissingKeyIsContractViolation(t *testing.T) {
	_, err := DecodeFields(schema.Identity(), []byte(`{"name": "RAMESH KUMAR"}`))
	assert.ErrorIs(t, err, common.ErrContractViolation)
}

func TestDecodeFieldsExtraKeyIsContractViolation(t *testing.T) {
	body := `{
		"name": "RAMESH KUMAR",
		"aadhaar_number": "1234 5678 9012",
		"date_of_birth": "01/01/1990",
		"gender": "Male",
		"address": "Not Available",
		"confidence": "high"
	}`
	_, err := DecodeFields(schema.Identity(), []byte(body))
	assert.ErrorIs(t, err, common.ErrContractViolation)
}

func TestDecodeFieldsNonStringValueIsContractViolation(t *testing.T) {
	body := `{
		"name": "RAMESH KUMAR",
		"aadhaar_number": 123456789012,
		"date_of_birth": "01/01/1990",
		"gender": "Male",
		"address": "Not Available"
	}`
	_, err := DecodeFields(schema.Identity(), []byte(body))
	assert.ErrorIs(t, err, common.ErrContractViolation)
}
