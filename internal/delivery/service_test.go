package delivery

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

type stubQueries struct {
	dbgen.Querier

	costs map[string][]dbgen.DeliveryCost
}

// GetDeliveryCostByLocation mirrors the query's cheapest-first ordering
// when a city carries several service tiers.
func (s *stubQueries) GetDeliveryCostByLocation(ctx context.Context, location string) (dbgen.DeliveryCost, error) {
	rows, ok := s.costs[strings.ToLower(location)]
	if !ok || len(rows) == 0 {
		return dbgen.DeliveryCost{}, pgx.ErrNoRows
	}
	best := rows[0]
	for _, row := range rows[1:] {
		if row.Cost.LessThan(best.Cost) {
			best = row
		}
	}
	return best, nil
}

func (s *stubQueries) GetDeliveryCostByID(ctx context.Context, id pgtype.UUID) (dbgen.DeliveryCost, error) {
	for _, rows := range s.costs {
		for _, row := range rows {
			if common.UUIDEqual(row.ID, id) {
				return row, nil
			}
		}
	}
	return dbgen.DeliveryCost{}, pgx.ErrNoRows
}

func newTestService() (*Service, dbgen.DeliveryCost) {
	dhaka := dbgen.DeliveryCost{
		ID:       pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Location: "Dhaka",
		Service:  "standard",
		Cost:     decimal.NewFromInt(60),
	}
	svc := &Service{Q: &stubQueries{costs: map[string][]dbgen.DeliveryCost{"dhaka": {dhaka}}}}
	return svc, dhaka
}

func TestByLocationFindsCity(t *testing.T) {
	svc, want := newTestService()
	row, err := svc.ByLocation(context.Background(), "  Dhaka ")
	if err != nil {
		t.Fatalf("by location: %v", err)
	}
	if !row.Cost.Equal(want.Cost) {
		t.Fatalf("cost = %s, want %s", row.Cost, want.Cost)
	}
}

func TestByLocationResolvesCheapestService(t *testing.T) {
	express := dbgen.DeliveryCost{
		ID:       pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Location: "Dhaka",
		Service:  "express",
		Cost:     decimal.NewFromInt(120),
	}
	standard := dbgen.DeliveryCost{
		ID:       pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Location: "Dhaka",
		Service:  "standard",
		Cost:     decimal.NewFromInt(60),
	}
	svc := &Service{Q: &stubQueries{costs: map[string][]dbgen.DeliveryCost{"dhaka": {express, standard}}}}
	row, err := svc.ByLocation(context.Background(), "Dhaka")
	if err != nil {
		t.Fatalf("by location: %v", err)
	}
	if row.Service != "standard" {
		t.Fatalf("service = %q, want standard", row.Service)
	}
}

func TestByLocationUnknownCity(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.ByLocation(context.Background(), "Atlantis")
	assertCode(t, err, "NOT_FOUND")
}

func TestByLocationRequiresInput(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.ByLocation(context.Background(), "   ")
	assertCode(t, err, "INVALID_REQUEST")
}

func TestByIDNotFound(t *testing.T) {
	svc, _ := newTestService()
	missing := pgtype.UUID{Valid: true}
	_, err := svc.ByID(context.Background(), missing)
	assertCode(t, err, "NOT_FOUND")
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	appErr, ok := err.(*common.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("code = %s, want %s", appErr.Code, code)
	}
}
