package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// parseFilter lee ?start_date&end_date[&channel] (YYYY-MM-DD, ambos opcionales).
func parseFilter(c *fiber.Ctx) (repository.RecordFilter, error) {
	var q dto.RangeQuery
	if err := c.QueryParser(&q); err != nil {
		return repository.RecordFilter{}, fmt.Errorf("%w: query inválida", domain.ErrInvalidInput)
	}
	if err := dto.Validate(q); err != nil {
		return repository.RecordFilter{}, err
	}
	r, err := ledger.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return repository.RecordFilter{}, err
	}
	f := repository.RecordFilter{Range: r}
	if q.Channel != "" {
		ch, err := entity.ParseChannel(q.Channel)
		if err != nil {
			return repository.RecordFilter{}, err
		}
		f.Channel = ch
	}
	return f, nil
}

func parseRange(c *fiber.Ctx) (ledger.DateRange, error) {
	f, err := parseFilter(c)
	return f.Range, err
}
