// Package repository defines the storage ports the analytics subsystem
// depends on, plus their GORM implementations. Components receive these
// interfaces explicitly so tests can substitute in-memory fakes.
package repository

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUserNotFound = errors.New("user not found")
	ErrContentNotFound = errors.New("content not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrTemplateNotFound = errors.New("template not found")
)
