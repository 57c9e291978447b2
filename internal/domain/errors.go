package domain

import "errors"

// ErrNotFound is returned when a park or visit lookup yields nothing.
// CLI and agent callers report it as a message rather than failing.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. blank name, latitude out of range).
var ErrValidation = errors.New("validation error")

// ErrMalformedDocument is returned when the backing file exists but cannot
// be decoded. The store never repairs or discards such a file.
var ErrMalformedDocument = errors.New("malformed store document")

// ErrSourceUnavailable is returned by the importer when the external park
// listing cannot be read, fetched or decoded.
var ErrSourceUnavailable = errors.New("import source unavailable")

// ErrModelUnavailable is returned when the text-completion backend is not
// configured, times out, or answers with something that is not a usable suggestion.
var ErrModelUnavailable = errors.New("model unavailable")
