package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/estudiobarro/taller-api/internal/application/dto"
	"github.com/estudiobarro/taller-api/internal/application/production"
	"github.com/estudiobarro/taller-api/internal/domain/entity"
)

// TransitionService operaciones mutadoras del motor de producción.
type TransitionService interface {
	Input(ctx context.Context, in production.InputDTO) (*production.TransitionResult, error)
	Advance(ctx context.Context, in production.AdvanceDTO) (*production.TransitionResult, error)
	Adjust(ctx context.Context, in production.AdjustDTO) (*production.TransitionResult, error)
	Shrink(ctx context.Context, in production.ShrinkDTO) (*production.TransitionResult, error)
}

// InventoryQueries proyecciones de solo lectura del inventario.
type InventoryQueries interface {
	CurrentInventory(ctx context.Context) ([]*entity.OnHandItem, error)
	MovementHistory(ctx context.Context, limit int) ([]*entity.MovementHistoryItem, error)
}

// ProductionHandler maneja las peticiones HTTP del motor de producción
// (protegido: roles taller y admin para mutaciones).
type ProductionHandler struct {
	engine  TransitionService
	queries InventoryQueries
}

// NewProductionHandler construye el handler.
func NewProductionHandler(engine TransitionService, queries InventoryQueries) *ProductionHandler {
	return &ProductionHandler{engine: engine, queries: queries}
}

// Input godoc
// @Summary      Ingresar piezas crudas al pipeline
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InputRequest  true  "product_id, quantity > 0, notes opcional"
// @Success      201   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/input [post]
func (h *ProductionHandler) Input(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.InputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.Input(c.Context(), production.InputDTO{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
		CreatedBy: userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransitionResponse(res))
}

// Advance godoc
// @Summary      Avanzar piezas de etapa (RAW→FIRED, FIRED→GLAZED)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdvanceRequest  true  "to_color_variant_id obligatorio si to_stage=GLAZED"
// @Success      201   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/advance [post]
func (h *ProductionHandler) Advance(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdvanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.Advance(c.Context(), production.AdvanceDTO{
		ProductID:        in.ProductID,
		FromStage:        entity.Stage(in.FromStage),
		ToStage:          entity.Stage(in.ToStage),
		ToColorVariantID: in.ToColorVariantID,
		Quantity:         in.Quantity,
		Notes:            in.Notes,
		CreatedBy:        userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransitionResponse(res))
}

// Adjustment godoc
// @Summary      Ajustar balance a una cantidad exacta (conteo físico)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "target_quantity >= 0; color_variant_id solo con stage=GLAZED"
// @Success      201   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/adjustment [post]
func (h *ProductionHandler) Adjustment(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.Adjust(c.Context(), production.AdjustDTO{
		ProductID:      in.ProductID,
		Stage:          entity.Stage(in.Stage),
		ColorVariantID: in.ColorVariantID,
		TargetQuantity: in.TargetQuantity,
		Notes:          in.Notes,
		CreatedBy:      userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransitionResponse(res))
}

// Shrinkage godoc
// @Summary      Registrar merma (rotura, pérdida)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShrinkageRequest  true  "quantity > 0; color_variant_id solo con stage=GLAZED"
// @Success      201   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/shrinkage [post]
func (h *ProductionHandler) Shrinkage(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ShrinkageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.Shrink(c.Context(), production.ShrinkDTO{
		ProductID:      in.ProductID,
		Stage:          entity.Stage(in.Stage),
		ColorVariantID: in.ColorVariantID,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
		CreatedBy:      userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransitionResponse(res))
}

// CurrentInventory godoc
// @Summary      Inventario vigente por producto, etapa y color
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.OnHandItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/production/inventory [get]
func (h *ProductionHandler) CurrentInventory(c *fiber.Ctx) error {
	items, err := h.queries.CurrentInventory(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.OnHandItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.OnHandItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Stage:       string(item.Stage),
			ColorName:   item.ColorName,
			Quantity:    item.Quantity,
			UpdatedAt:   item.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "inventory": out})
}

// MovementHistory godoc
// @Summary      Historial de movimientos, más recientes primero
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas (tope 100, default 20)"
// @Success      200  {array}   dto.MovementHistoryItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/production/movements [get]
func (h *ProductionHandler) MovementHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	items, err := h.queries.MovementHistory(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementHistoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.MovementHistoryItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Type:        item.Type,
			FromStage:   stageText(item.FromStage),
			ToStage:     stageText(item.ToStage),
			ColorName:   item.ColorName,
			Quantity:    item.Quantity,
			Notes:       item.Notes,
			CreatedBy:   item.CreatedBy,
			CreatedAt:   item.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

func toTransitionResponse(res *production.TransitionResult) dto.TransitionResponse {
	out := dto.TransitionResponse{
		Movement: dto.MovementResponse{
			ID:                 res.Movement.ID,
			ProductID:          res.Movement.ProductID,
			Type:               res.Movement.Type,
			FromStage:          stageText(res.Movement.FromStage),
			ToStage:            stageText(res.Movement.ToStage),
			FromColorVariantID: res.Movement.FromColorVariantID,
			ToColorVariantID:   res.Movement.ToColorVariantID,
			Quantity:           res.Movement.Quantity,
			Notes:              res.Movement.Notes,
			CreatedBy:          res.Movement.CreatedBy,
			CreatedAt:          res.Movement.CreatedAt,
		},
	}
	for _, b := range res.Balances {
		out.Balances = append(out.Balances, dto.BalanceResponse{
			ProductID:      b.ProductID,
			Stage:          string(b.Stage),
			ColorVariantID: b.ColorVariantID,
			Quantity:       b.Quantity,
			UpdatedAt:      b.UpdatedAt,
		})
	}
	return out
}

func stageText(s *entity.Stage) *string {
	if s == nil {
		return nil
	}
	str := string(*s)
	return &str
}
