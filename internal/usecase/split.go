package usecase

import (
	"fmt"

	"FinCast/internal/domain/models"
)

// Split holds out the final testDays rows. Both halves are copies.
func Split(in models.ModelInput, testDays int) (models.Split, error) {
	if testDays <= 0 || testDays >= len(in) {
		return models.Split{}, fmt.Errorf("%w: test_days=%d with %d rows", models.ErrInvalidSplit, testDays, len(in))
	}
	cut := len(in) - testDays
	train := make(models.ModelInput, cut)
	copy(train, in[:cut])
	test := make(models.ModelInput, testDays)
	copy(test, in[cut:])
	return models.Split{Train: train, Test: test}, nil
}
