package handler

import (
	"fmt"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

// parseDateRange reads the optional from/to query params (YYYY-MM-DD,
// inclusive). Both must be given together or not at all.
func parseDateRange(c echo.Context) (*domain.DateRange, []ValidationError) {
	fromStr := c.QueryParam("from")
	toStr := c.QueryParam("to")

	if fromStr == "" && toStr == "" {
		return nil, nil
	}
	if fromStr == "" || toStr == "" {
		field := "from"
		if toStr == "" {
			field = "to"
		}
		return nil, []ValidationError{{Field: field, Message: "from and to must be provided together"}}
	}

	from, err := time.Parse(time.DateOnly, fromStr)
	if err != nil {
		return nil, []ValidationError{{Field: "from", Message: "Must be a YYYY-MM-DD date"}}
	}
	to, err := time.Parse(time.DateOnly, toStr)
	if err != nil {
		return nil, []ValidationError{{Field: "to", Message: "Must be a YYYY-MM-DD date"}}
	}
	if to.Before(from) {
		return nil, []ValidationError{{Field: "to", Message: fmt.Sprintf("Must not be before from (%s)", fromStr)}}
	}

	return &domain.DateRange{From: from, To: to}, nil
}
