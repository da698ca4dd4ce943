package security

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectSigned(t *testing.T) {
	payload := []byte("<enviNFe versao=\"4.00\">\n  <idLote>1</idLote>\n  <NFe/>\n</enviNFe>")
	signed := "<NFe><infNFe Id=\"NFe123\"/><Signature>sig</Signature></NFe>"

	out, err := InjectSigned(payload, `<NFe/>`, signed)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, signed)
	assert.NotContains(t, s, "<NFe/>")
	assert.NotContains(t, s, "\n", "line breaks must be stripped from the signed payload")
}

func TestInjectSigned_PatternWithAttributes(t *testing.T) {
	payload := []byte(`<envEvento><evento versao="1.00" foo="bar"/></envEvento>`)

	out, err := InjectSigned(payload, `<evento[^>]*/>`, "<evento>signed</evento>")
	require.NoError(t, err)
	assert.Equal(t, "<envEvento><evento>signed</evento></envEvento>", string(out))
}

func TestInjectSigned_NotFound(t *testing.T) {
	_, err := InjectSigned([]byte("<enviNFe/>"), `<NFe/>`, "<NFe>signed</NFe>")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlaceholderNotFound))
}

func TestInjectSigned_BadPattern(t *testing.T) {
	_, err := InjectSigned([]byte("<enviNFe/>"), `<NFe[`, "<NFe/>")
	require.Error(t, err)
}

func TestVerifyFragment_Unsigned(t *testing.T) {
	err := VerifyFragment([]byte(`<NFe><infNFe Id="NFe123"/></NFe>`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadSignature))
}

func TestVerifyFragment_NotXML(t *testing.T) {
	err := VerifyFragment([]byte("not xml at all <"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadSignature))
}
