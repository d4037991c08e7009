// Package sanitizer provides input normalization functions for request data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings or empty slices rather than errors.
//
// The package is used across all services for consistent data normalization
// before validation and storage.
//
// Normalization includes:
//   - Phone numbers: Convert to E.164 format (+[country][number])
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Keys: Lowercase, replace separator runs with a single underscore -
//     "Caixa de som" becomes "caixa_de_som"
//   - Slices: Remove duplicates and empty values after normalization
package sanitizer
