package catalog

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

// validateProject checks the fields an editor must fill in before a draft can
// enter the catalog. Whitespace-only values count as blank.
func validateProject(p models.Project) error {
	if err := validation.Validate(strings.TrimSpace(p.Title), validation.Required); err != nil {
		return errs.NewMissingRequiredFieldError("title")
	}
	if err := validation.Validate(strings.TrimSpace(p.Description), validation.Required); err != nil {
		return errs.NewMissingRequiredFieldError("description")
	}

	for i := range p.Media {
		item := p.Media[i]
		err := validation.ValidateStruct(&item,
			validation.Field(&item.Type, validation.Required, validation.In(models.MediaImage, models.MediaVideo)),
			validation.Field(&item.URL, validation.Required),
		)
		if err != nil {
			return errs.FromValidation(err, fmt.Sprintf("media[%d].", i))
		}
	}
	return nil
}
