// Package errors maps reduction and transport failures onto RFC 7807
// problem responses. Precondition violations become 400 responses and
// numerical domain errors become 422 responses.
package errors
