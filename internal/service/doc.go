// Package service contains the application use cases for users and cards.
//
// Services validate input against domain rules, call exactly the store
// operations a use case needs, and wrap failures in UserServiceError or
// CardServiceError. Wrapped errors keep the underlying sentinel reachable
// through errors.Is so the API layer can map them to HTTP statuses.
package service
