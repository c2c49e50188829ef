package identity

import (
	"kedilabs/internal/core/domain/submission"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateID() submission.ID {
	return submission.ID(uuid.New().String())
}
