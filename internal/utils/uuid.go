package utils

import "github.com/google/uuid"

// UUIDGenerator produces the identifiers assigned to users, tasks and
// projects on creation.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUID v7 string, so that sorting by
// identifier follows creation order. It falls back to a random v4 UUID if
// the v7 generator fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
