package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estudiobarro/taller-api/internal/application/dto"
	"github.com/estudiobarro/taller-api/internal/application/ledger"
)

// LedgerHandler maneja la contabilidad simple del taller (solo admin).
type LedgerHandler struct {
	uc *ledger.UseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// CreateEntry godoc
// @Summary      Registrar asiento contable (ingreso o egreso)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLedgerEntryRequest  true  "concept, type INCOME|EXPENSE, amount > 0"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ledger/entries [post]
func (h *LedgerHandler) CreateEntry(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateLedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.CreateEntry(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListEntries godoc
// @Summary      Listar asientos, opcionalmente filtrados por fecha
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Param        limit   query  int     false  "Tamaño de página (tope 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/ledger/entries [get]
func (h *LedgerHandler) ListEntries(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	entries, err := h.uc.ListEntries(c.Context(), c.Query("from"), c.Query("to"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": entries})
}

// Balance godoc
// @Summary      Balance del rango: ingresos menos egresos
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.LedgerBalanceResponse
// @Router       /api/ledger/balance [get]
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	balance, err := h.uc.Balance(c.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(balance)
}
