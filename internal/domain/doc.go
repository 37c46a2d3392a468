// Package domain contains the core business entities (users and cards),
// their identifiers and validation rules. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
