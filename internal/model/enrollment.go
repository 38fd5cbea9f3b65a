package model

import "time"

// Enrollment is a user's registration record for the event. Exactly one
// enrollment may exist per user and its presence is a prerequisite for
// every booking action. The address columns come from the signup form
// and are carried along because the lookup joins them in one query.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user (unique).
//  Name      – attendee full name.
//  CPF       – national document number captured at signup.
//  Street    – address street line.
//  City      – address city.
//  State     – address state/region code.
//  PostalCode– address postal code.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Enrollment struct {
	ID         uint64    // enrollments.id
	UserID     uint64    // enrollments.user_id
	Name       string    // enrollments.name
	CPF        string    // enrollments.cpf
	Street     string    // enrollments.street
	City       string    // enrollments.city
	State      string    // enrollments.state
	PostalCode string    // enrollments.postal_code
	CreatedAt  time.Time // enrollments.created_at
	UpdatedAt  time.Time // enrollments.updated_at
}
