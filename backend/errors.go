package backend

import "github.com/pkg/errors"

var errPayloadMismatch = errors.New("backend: header payload hash does not match validated payload")
