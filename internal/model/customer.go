package model

import "strings"

// Customer represents a guest of the restaurant as stored in the
// `customers` table.  A customer has many reservations; the link is
// kept on the reservation side only.
//
// Fields:
//  ID        – primary key identifier; zero until the record is saved.
//  FirstName – given name (required).
//  LastName  – family name (required).
//  Phone     – contact number (nullable).
//  Notes     – free text kept by staff (nullable).
type Customer struct {
	ID        uint64  `json:"id,omitempty"` // customers.id
	FirstName string  `json:"firstName"`    // customers.first_name
	LastName  string  `json:"lastName"`     // customers.last_name
	Phone     *string `json:"phone"`        // customers.phone (nullable)
	Notes     *string `json:"notes"`        // customers.notes (nullable)
}

// NewCustomer builds an unsaved customer.  Empty optional values are
// stored as NULL.
func NewCustomer(firstName, lastName, phone, notes string) *Customer {
	return &Customer{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Phone:     OptionalString(phone),
		Notes:     OptionalString(notes),
	}
}

// FullName joins first and last name with a single space.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// IsNew reports whether the customer has not been persisted yet.
func (c Customer) IsNew() bool { return c.ID == 0 }

// Validate checks the required name fields.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return invalid("firstName", "first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return invalid("lastName", "last name is required")
	}
	return nil
}

// OptionalString returns nil for blank input and a pointer to the
// trimmed value otherwise.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
