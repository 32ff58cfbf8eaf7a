package apperrors

import "errors"

// ErrNotFound indicates that a requested rate or resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrProviderUnavailable indicates a provider could not be reached or refused the request.
var ErrProviderUnavailable = errors.New("provider unavailable")

// ErrProviderDataMissing indicates a provider responded but had no quotes for the requested date.
var ErrProviderDataMissing = errors.New("provider data missing")

// ErrAllProvidersExhausted indicates every configured provider failed for a fetch.
var ErrAllProvidersExhausted = errors.New("all providers exhausted")

// ErrNormalization indicates a provider payload could not be re-based to the canonical currency.
var ErrNormalization = errors.New("normalization impossible")
