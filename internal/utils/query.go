// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// BoolDefault converts a string to a bool using strconv.ParseBool.
// If the string is empty or cannot be parsed as a boolean,
// it returns the provided default value instead.
//
// Example:
//
//	b := utils.BoolDefault("true", false) // returns true
//	b = utils.BoolDefault("", false)      // returns false
//	b = utils.BoolDefault("x", true)      // returns true
func BoolDefault(s string, def bool) bool {
	if s == "" {
		return def
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return def
}
