// Package database provides the warehouse connection pool. Staging and
// curated tables share a single PostgreSQL database; loaders depend on the
// narrow Execer contract rather than the pool itself.
package database
