package delivery

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

// Service resolves delivery costs by location.
type Service struct {
	Q dbgen.Querier
}

// ByLocation finds the cost row for a city, matched case-insensitively.
func (s *Service) ByLocation(ctx context.Context, location string) (dbgen.DeliveryCost, error) {
	if s == nil || s.Q == nil {
		return dbgen.DeliveryCost{}, errors.New("delivery service not configured")
	}
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return dbgen.DeliveryCost{}, common.InvalidRequest("location is required")
	}
	row, err := s.Q.GetDeliveryCostByLocation(ctx, trimmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.DeliveryCost{}, common.NotFound("invalid delivery location")
		}
		return dbgen.DeliveryCost{}, common.Internal(err)
	}
	return row, nil
}

// ByID returns a single cost row.
func (s *Service) ByID(ctx context.Context, id pgtype.UUID) (dbgen.DeliveryCost, error) {
	if s == nil || s.Q == nil {
		return dbgen.DeliveryCost{}, errors.New("delivery service not configured")
	}
	row, err := s.Q.GetDeliveryCostByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.DeliveryCost{}, common.NotFound("delivery cost not found")
		}
		return dbgen.DeliveryCost{}, common.Internal(err)
	}
	return row, nil
}
