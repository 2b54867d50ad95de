package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"
)

const confirmationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrInvalidCustomer customer contact details are missing or malformed
var ErrInvalidCustomer = errors.New("invalid customer details")

// Customer contact details stored on a booking
type Customer struct {
	Name  string
	Phone string
	Email *string
	Notes *string
}

// Normalize trims the fields in place, drops empty optionals and checks lengths
func (c *Customer) Normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidCustomer)
	}
	if utf8.RuneCountInString(c.Name) > MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is longer than %d characters", ErrInvalidCustomer, MaxCustomerNameLength)
	}

	c.Phone = strings.TrimSpace(c.Phone)
	if c.Phone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidCustomer)
	}
	if utf8.RuneCountInString(c.Phone) > MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone is longer than %d characters", ErrInvalidCustomer, MaxCustomerPhoneLength)
	}

	if c.Email != nil {
		email := strings.TrimSpace(*c.Email)
		switch {
		case email == "":
			c.Email = nil
		case !strings.Contains(email, "@"):
			return fmt.Errorf("%w: invalid customerEmail", ErrInvalidCustomer)
		default:
			c.Email = &email
		}
	}

	if c.Notes != nil {
		if utf8.RuneCountInString(*c.Notes) > MaxNotesLength {
			return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidCustomer, MaxNotesLength)
		}
		if strings.TrimSpace(*c.Notes) == "" {
			c.Notes = nil
		}
	}

	return nil
}

// NewConfirmationCode returns a code like MAD-7K2Q9A
func NewConfirmationCode() (string, error) {
	buf := make([]byte, ConfirmationCodeLength)
	max := big.NewInt(int64(len(confirmationCodeAlphabet)))

	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = confirmationCodeAlphabet[n.Int64()]
	}

	return ConfirmationCodePrefix + string(buf), nil
}
