// Package kernel contains shared value objects used across the domain model:
// geographic points with great-circle distance, cargo weight, and entity
// identifiers. All types are immutable and must be created through their
// constructors; zero values fail validation.
package kernel
