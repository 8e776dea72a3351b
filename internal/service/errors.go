package service

import "errors"

// ErrNotFound covers both a record that does not exist and a record owned by
// someone else. Callers cannot tell the two apart, so a probe cannot reveal
// whether an id exists.
var ErrNotFound = errors.New("not found")

// ErrScanUnavailable is returned when no vision backend is configured.
var ErrScanUnavailable = errors.New("pantry scan not configured")
