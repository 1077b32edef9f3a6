// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between failure scenarios.
package repository

import "errors"

// ErrRocketNotFound is returned when a rocket cannot be found in the DB.
var ErrRocketNotFound = errors.New("rocket not found")

// ErrMissionNotFound is returned when a mission cannot be found in the DB.
var ErrMissionNotFound = errors.New("mission not found")

// ErrRocketExists is returned when an insert or update collides with an
// existing rocket name. Rocket names are unique case-insensitively, so
// "Falcon 9" and "falcon 9" collide. Handlers should translate this into
// an HTTP 409 response.
var ErrRocketExists = errors.New("rocket name already exists")
