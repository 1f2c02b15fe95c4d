// File: /utils/validators.go
package utils

import (
	"regexp"
	"strconv"
	"unicode"
)

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	// At least 3 of 4 character types required
	count := 0
	if hasUpper {
		count++
	}
	if hasLower {
		count++
	}
	if hasNumber {
		count++
	}
	if hasSpecial {
		count++
	}

	return count >= 3
}

// IsValidCPF validates a Brazilian CPF document number, with or without
// punctuation. Both check digits are verified.
func IsValidCPF(cpf string) bool {
	digits := make([]int, 0, 11)
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			d, _ := strconv.Atoi(string(r))
			digits = append(digits, d)
		} else if r != '.' && r != '-' {
			return false
		}
	}

	if len(digits) != 11 {
		return false
	}

	// Sequences like 111.111.111-11 pass the checksum but are not valid CPFs
	allEqual := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	for _, n := range []int{9, 10} {
		sum := 0
		for i := 0; i < n; i++ {
			sum += digits[i] * (n + 1 - i)
		}
		check := (sum * 10) % 11
		if check == 10 {
			check = 0
		}
		if check != digits[n] {
			return false
		}
	}

	return true
}

// NormalizeCPF strips punctuation so the unique index only ever sees the
// 11-digit form.
func NormalizeCPF(cpf string) string {
	normalized := make([]byte, 0, 11)
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			normalized = append(normalized, byte(r))
		}
	}
	return string(normalized)
}
