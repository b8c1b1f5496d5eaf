package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashwanthu-lab/docfields/internal/schema"
	"github.com/yashwanthu-lab/docfields/internal/textnorm"
)

func extract(t *testing.T, sc *schema.Schema, text string) schema.Result {
	t.Helper()
	return NewExtractor(nil).Extract(sc, textnorm.Normalize(text))
}

func TestIdentityDisambiguation(t *testing.T) {
	res := extract(t, schema.Identity(),
		"RAMESH KUMAR S/O SURESH KUMAR DOB 01/01/1990 MALE 1234 5678 9012")

	assert.Equal(t, "RAMESH KUMAR", res["name"])
	assert.Equal(t, "1234 5678 9012", res["aadhaar_number"])
	assert.Equal(t, "01/01/1990", res["date_of_birth"])
	assert.Equal(t, "MALE", res["gender"])
	assert.Equal(t, schema.NotAvailable, res["address"])
}

func TestIdentityNameSkipsGovernmentHeaders(t *testing.T) {
	res := extract(t, schema.Identity(),
		"GOVERNMENT OF INDIA UNIQUE IDENTIFICATION AUTHORITY ANITA DEVI SHARMA DOB 05/06/1985 FEMALE")
	assert.Equal(t, "ANITA DEVI SHARMA", res["name"])
	assert.Equal(t, "FEMALE", res["gender"])
}

func TestIdentityNameNeverPromotedAfterRelationIndicator(t *testing.T) {
	// everything before the indicator is a header, so nothing qualifies
	res := extract(t, schema.Identity(), "AADHAAR W/O MOHAN LAL 01/02/1970")
	assert.Equal(t, schema.NotAvailable, res["name"])
}

func TestAddressKeywordGate(t *testing.T) {
	// a well-formed street-like line without an address keyword must not be
	// promoted to an address
	res := extract(t, schema.Identity(),
		"RAMESH KUMAR DOB 01/01/1990\n42 Nehru Street Springfield")
	assert.Equal(t, schema.NotAvailable, res["address"])

	res = extract(t, schema.Identity(),
		"RAMESH KUMAR DOB 01/01/1990\nAddress: 42 Nehru Street\nPIN 560001 Bengaluru")
	assert.Equal(t, "42 Nehru Street PIN 560001 Bengaluru", res["address"])
}

func TestKeywordAnchoredPrecedence(t *testing.T) {
	// an anchored IFSC wins over a bare-format code regardless of position
	res := extract(t, schema.Bank(),
		"WXYZ0654321 some noise\nIFSC: ABCD0123456")
	assert.Equal(t, "ABCD0123456", res["ifsc_code"])
}

func TestBankAnchoredAccountPrecedence(t *testing.T) {
	res := extract(t, schema.Bank(),
		"REF 999888777666 A/C: 123456789012")
	assert.Equal(t, "123456789012", res["account"])
}

func TestBankDocument(t *testing.T) {
	res := extract(t, schema.Bank(), `STATE BANK OF INDIA
MAIN BRANCH KORAMANGALA
IFSC: SBIN0001234
SUNITA RANI VERMA
A/C: 12345678901
PAN: ABCDE1234F
MOBILE: 9876543210
CIF: 987654321
NOMINEE: RAKESH VERMA
Address: 12 MG Road Bengaluru PIN 560001`)

	assert.Equal(t, "STATE BANK OF INDIA", res["bank_name"])
	assert.Equal(t, "MAIN BRANCH KORAMANGALA", res["branch_name"])
	assert.Equal(t, "SBIN0001234", res["ifsc_code"])
	assert.Equal(t, "SUNITA RANI VERMA", res["name"])
	assert.Equal(t, "ABCDE1234F", res["pan_no"])
	assert.Equal(t, "987654321", res["cif"])
	assert.Equal(t, "9876543210", res["phone_number"])
	assert.Equal(t, "12345678901", res["account"])
	assert.Equal(t, "RAKESH VERMA", res["nominee"])
	assert.Equal(t, "12 MG Road Bengaluru PIN 560001", res["address"])
}

func TestHolderNameSkipsBankAndHeadingLines(t *testing.T) {
	res := extract(t, schema.Bank(), "HDFC BANK LIMITED\nSAVINGS ACCOUNT PASSBOOK\nPRIYA NAIR")
	assert.Equal(t, "PRIYA NAIR", res["name"])
	assert.Equal(t, "HDFC BANK LIMITED", res["bank_name"])
}

func TestMissingFieldsStillSucceed(t *testing.T) {
	// no bank-document markers at all: every field resolves to the sentinel
	res := extract(t, schema.Bank(), "the quick brown fox jumps over the lazy dog")
	require.Len(t, res, len(schema.Bank().Fields))
	for name, v := range res {
		assert.Equal(t, schema.NotAvailable, v, "field %s", name)
	}
}

func TestCardinalityInvariant(t *testing.T) {
	for _, sc := range []*schema.Schema{schema.Identity(), schema.Bank()} {
		for _, text := range []string{"", "zz", "RAMESH KUMAR 1234 5678 9012"} {
			res := extract(t, sc, text)
			require.Len(t, res, len(sc.Fields), "schema %s input %q", sc.Name, text)
			for _, name := range sc.FieldNames() {
				_, ok := res[name]
				assert.True(t, ok, "schema %s missing field %s", sc.Name, name)
			}
		}
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	const text = "STATE BANK OF INDIA\nSUNITA VERMA\nA/C: 12345678901"
	first := extract(t, schema.Bank(), text)
	second := extract(t, schema.Bank(), text)
	assert.Equal(t, first, second)
}
