package service

import "github.com/market-next/internal/config"

const fallbackPasswordMinLength = 8

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	minLength := policy.MinLength
	if minLength <= 0 {
		minLength = fallbackPasswordMinLength
	}
	if len([]rune(password)) < minLength {
		return ErrWeakPassword
	}
	return nil
}
