package pool

import (
	"unicode/utf8"

	"prize_pool/internal/model"
	"prize_pool/internal/probability"
)

// validateCreatePool проверяет ограничения длины и количества предметов.
// Нулевые цена и стоимости проверяет сам движок
func validateCreatePool(req model.CreatePool) error {
	if utf8.RuneCountInString(req.CompanyName) > model.MaxCompanyNameLen {
		return model.ErrCompanyNameTooLong
	}
	if utf8.RuneCountInString(req.CompanyImage) > model.MaxCompanyImageLen {
		return model.ErrCompanyImageTooLong
	}
	if len(req.Items) == 0 {
		return probability.ErrEmptyItems
	}
	if len(req.Items) > model.MaxPoolItems {
		return probability.ErrTooManyItems
	}

	for _, item := range req.Items {
		if utf8.RuneCountInString(item.Name) > model.MaxItemNameLen {
			return model.ErrItemNameTooLong
		}
		if utf8.RuneCountInString(item.Image) > model.MaxItemImageLen {
			return model.ErrItemImageTooLong
		}
		if utf8.RuneCountInString(item.Description) > model.MaxItemDescLen {
			return model.ErrItemDescTooLong
		}
	}

	return nil
}
