// Package auth issues and validates bearer tokens and handles password
// hashing and credential verification for sign-in.
package auth
