// Package postgres provides the PostgreSQL implementations of the store
// interfaces together with the embedded schema migrations.
//
// Queries run through database/sql using the pgx stdlib driver. Driver errors
// are classified into store sentinels by MapError before they leave the package.
package postgres
