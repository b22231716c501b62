package ledger

import (
	"context"
	"time"

	"github.com/estudiobarro/taller-api/internal/application/dto"
	"github.com/estudiobarro/taller-api/internal/domain"
	"github.com/estudiobarro/taller-api/internal/domain/entity"
	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase contabilidad simple del taller: asientos inmutables de ingreso y
// egreso, listado con filtro de fechas y balance agregado. Las correcciones
// se hacen con asientos compensatorios, nunca editando.
type UseCase struct {
	ledgerRepo repository.LedgerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(ledgerRepo repository.LedgerRepository) *UseCase {
	return &UseCase{ledgerRepo: ledgerRepo}
}

// CreateEntry registra un asiento. El monto es siempre positivo; el tipo
// (INCOME/EXPENSE) da el signo al agregarlo al balance.
func (uc *UseCase) CreateEntry(ctx context.Context, createdBy string, in dto.CreateLedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	if createdBy == "" || in.Concept == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.LedgerTypeIncome && in.Type != entity.LedgerTypeExpense {
		return nil, domain.ErrInvalidInput
	}
	entryDate := time.Now()
	if in.EntryDate != "" {
		parsed, err := time.Parse(dateLayout, in.EntryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		entryDate = parsed
	}
	entry := &entity.LedgerEntry{
		EntryDate: entryDate,
		Concept:   in.Concept,
		Type:      in.Type,
		Amount:    in.Amount,
		CreatedBy: createdBy,
	}
	if err := uc.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// ListEntries lista asientos paginados, opcionalmente filtrados por fecha
// (from/to en formato YYYY-MM-DD).
func (uc *UseCase) ListEntries(ctx context.Context, fromStr, toStr string, page dto.PageRequest) ([]*dto.LedgerEntryResponse, error) {
	page.DefaultPage()
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	entries, err := uc.ledgerRepo.List(ctx, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out, nil
}

// Balance ingresos menos egresos del rango dado (o de toda la historia).
func (uc *UseCase) Balance(ctx context.Context, fromStr, toStr string) (*dto.LedgerBalanceResponse, error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	balance, err := uc.ledgerRepo.Balance(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerBalanceResponse{From: fromStr, To: toStr, Balance: balance}, nil
}

func parseRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		parsed, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		from = &parsed
	}
	if toStr != "" {
		parsed, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		to = &parsed
	}
	return from, to, nil
}

func toEntryResponse(e *entity.LedgerEntry) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:        e.ID,
		EntryDate: e.EntryDate.Format(dateLayout),
		Concept:   e.Concept,
		Type:      e.Type,
		Amount:    e.Amount,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}
