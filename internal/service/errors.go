package service

import "errors"

// ErrInvalidCredentials is returned by Authenticate for both an unknown
// username and a wrong password. A single error with a single message keeps
// the two cases indistinguishable to callers, which prevents username
// enumeration.
var ErrInvalidCredentials = errors.New("invalid username/password")
