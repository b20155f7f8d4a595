// Package migrations holds the storefront schema. Each file registers its
// migrations from init(); importing the package is enough to make them
// visible to the migration runner.
package migrations
