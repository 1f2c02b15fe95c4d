// File: /utils/validators_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCPF(t *testing.T) {
	valid := []string{
		"52998224725",
		"529.982.247-25",
		"111.444.777-35",
		"11144477735",
	}
	for _, cpf := range valid {
		assert.True(t, IsValidCPF(cpf), "expected %s to be valid", cpf)
	}

	invalid := []string{
		"",
		"1234567890",       // too short
		"123456789012",     // too long
		"52998224724",      // wrong second check digit
		"52998224735",      // wrong first check digit
		"111.111.111-11",   // repeated digits pass the checksum
		"000.000.000-00",   // repeated digits
		"529a8224725",      // letters
		"529 982 247 25",   // spaces are not accepted punctuation
		"529.982.247-2500", // extra digits
	}
	for _, cpf := range invalid {
		assert.False(t, IsValidCPF(cpf), "expected %s to be invalid", cpf)
	}
}

func TestNormalizeCPF(t *testing.T) {
	assert.Equal(t, "52998224725", NormalizeCPF("529.982.247-25"))
	assert.Equal(t, "52998224725", NormalizeCPF("52998224725"))
	assert.Equal(t, "", NormalizeCPF(""))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("joao.silva@example.com"))
	assert.True(t, IsValidEmail("maria+fitness@sub.domain.com.br"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Secret1"))    // upper, lower, number
	assert.True(t, IsValidPassword("secret#1"))   // lower, number, symbol
	assert.True(t, IsValidPassword("SECRET#abc")) // upper, lower, symbol
	assert.False(t, IsValidPassword("Sec#1"))     // too short
	assert.False(t, IsValidPassword("secretonly"))
	assert.False(t, IsValidPassword("12345678"))
	assert.False(t, IsValidPassword("Secretpass")) // only two character types
}
