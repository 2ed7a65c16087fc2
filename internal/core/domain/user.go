package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// PaymentDetails is captured at checkout and never stored or charged.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

func (p PaymentDetails) Complete() bool {
	return p.CardNumber != "" && p.CardName != "" && p.Expiry != "" && p.CVV != ""
}
