package appointment

import (
	"errors"
	"strings"
)

var ErrCustomerNameRequired = errors.New("customer name is required")

// Customer identifies who booked; email and phone are optional contact
// channels for the notification dispatcher.
type Customer struct {
	name  string
	email string
	phone string
}

func NewCustomer(name, email, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Customer{}, ErrCustomerNameRequired
	}
	return Customer{
		name:  name,
		email: strings.TrimSpace(email),
		phone: strings.TrimSpace(phone),
	}, nil
}

// ReconstructCustomer rebuilds the value object from persisted columns
// without re-running validation.
func ReconstructCustomer(name, email, phone string) Customer {
	return Customer{name: name, email: email, phone: phone}
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) Phone() string { return c.phone }

func (c Customer) HasEmail() bool { return c.email != "" }
