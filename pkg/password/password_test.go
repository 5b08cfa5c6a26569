package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/pkg/password"
)

func TestValidate_Valida(t *testing.T) {
	res := password.Validate("Secreta#2024")
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestValidate_UnErrorPorRegla(t *testing.T) {
	cases := []struct {
		name string
		pw   string
		want []string
	}{
		{"sin mayúscula", "secreta#2024", []string{password.MsgUppercase}},
		{"sin número", "Secreta#abcd", []string{password.MsgDigit}},
		{"sin especial", "Secreta2024", []string{password.MsgSpecial}},
		{"corta", "Se#1", []string{password.MsgMinLength}},
		{"solo minúsculas cortas", "abc", []string{password.MsgMinLength, password.MsgUppercase, password.MsgDigit, password.MsgSpecial}},
		{"vacía", "", []string{password.MsgRequired, password.MsgMinLength, password.MsgUppercase, password.MsgDigit, password.MsgSpecial}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := password.Validate(tc.pw)
			assert.False(t, res.IsValid)
			assert.Equal(t, tc.want, res.Errors)
		})
	}
}

// El espacio no cuenta como carácter especial del conjunto fijo.
func TestValidate_EspacioNoEsEspecial(t *testing.T) {
	res := password.Validate("Secreta 2024")
	assert.False(t, res.IsValid)
	assert.Equal(t, []string{password.MsgSpecial}, res.Errors)
}

func TestHashCompare(t *testing.T) {
	const pw = "Secreta#2024"
	hash, err := password.Hash(pw)
	require.NoError(t, err)
	assert.NotEqual(t, pw, hash)

	assert.True(t, password.Compare(pw, hash))
	assert.False(t, password.Compare("Secreta#2025", hash))
	assert.False(t, password.Compare("", hash))
}

func TestHash_SalDistinta(t *testing.T) {
	h1, err := password.Hash("Secreta#2024")
	require.NoError(t, err)
	h2, err := password.Hash("Secreta#2024")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "cada hash debe usar una sal distinta")
}
