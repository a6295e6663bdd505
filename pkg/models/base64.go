/*
 * Nuts bankid
 * Copyright (C) 2020. Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package models

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNilValue is returned when a value is missing entirely.
var ErrNilValue = errors.New("supplied Base64String is nil")

// ErrValueTooShort is returned when a value is shorter than the base64 minimum.
var ErrValueTooShort = errors.New("supplied Base64String is too short")

// ErrInvalidPattern is returned when a value does not match the base64 grammar.
var ErrInvalidPattern = errors.New("supplied Base64String does not match the base64 pattern")

const base64MinimumLength = 4

var base64Pattern = regexp.MustCompile(`^(?:[A-Za-z0-9+/]{4})*(?:[A-Za-z0-9+/]{2}==|[A-Za-z0-9+/]{3}=)?$`)

// Base64String represents a validated base64 encoded string.
// The zero value is invalid, use NewBase64String.
type Base64String struct {
	value string
}

// NewBase64String validates value against the base64 grammar and minimum length.
func NewBase64String(value string) (Base64String, error) {
	if !base64Pattern.MatchString(value) {
		return Base64String{}, fmt.Errorf("%w: %q", ErrInvalidPattern, value)
	}
	if len(value) < base64MinimumLength {
		return Base64String{}, fmt.Errorf("%w: %q", ErrValueTooShort, value)
	}

	return Base64String{value: value}, nil
}

// Base64StringFromPtr validates a possibly missing value.
func Base64StringFromPtr(value *string) (Base64String, error) {
	if value == nil {
		return Base64String{}, ErrNilValue
	}
	return NewBase64String(*value)
}

func (b Base64String) String() string {
	return b.value
}
