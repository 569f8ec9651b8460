package core

import (
	"errors"
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	ex "bondspread/data/extensions"
	dm "bondspread/data/models"
)

var (
	ErrInvalidCriteria   = errors.New("invalid selection criteria")
	ErrInsufficientBonds = errors.New("at least two bonds are required")
	ErrDataLoad          = errors.New("unable to load trade data")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// prepareCriteria fills defaults, truncates dates to calendar days and
// validates the ranges
func prepareCriteria(criteria *dm.SelectionCriteria) error {
	if err := defaults.Set(criteria); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	criteria.StartDate = ex.DateOnly(criteria.StartDate)
	criteria.EndDate = ex.DateOnly(criteria.EndDate)

	if err := validate.Struct(criteria); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	return nil
}
