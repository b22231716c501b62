package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estudiobarro/taller-api/internal/application/dto"
	"github.com/estudiobarro/taller-api/internal/application/usecase"
)

// ColorHandler maneja el CRUD de variantes de color (protegido).
type ColorHandler struct {
	uc *usecase.ColorUseCase
}

// NewColorHandler construye el handler.
func NewColorHandler(uc *usecase.ColorUseCase) *ColorHandler {
	return &ColorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear variante de color
// @Tags         colors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateColorVariantRequest  true  "name, hex_code opcional"
// @Success      201   {object}  dto.ColorVariantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/colors [post]
func (h *ColorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateColorVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	variant, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(variant)
}

// List godoc
// @Summary      Listar variantes de color
// @Tags         colors
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ColorVariantResponse
// @Router       /api/colors [get]
func (h *ColorHandler) List(c *fiber.Ctx) error {
	variants, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(variants), "colors": variants})
}
