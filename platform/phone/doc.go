// Package phone parses, validates and formats international phone numbers on
// top of the libphonenumber port in github.com/nyaruka/phonenumbers.
// This is part of the platform layer and contains no business logic.
package phone
