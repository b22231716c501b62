package production

import (
	"context"

	"github.com/estudiobarro/taller-api/internal/domain"
	"github.com/estudiobarro/taller-api/internal/domain/entity"
	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

// TransitionUseCase motor de transiciones de producción. Las cuatro
// operaciones (Input, Advance, Adjust, Shrink) comparten la misma forma:
// validar entrada, resolver balance(s) con bloqueo de fila, verificar
// conservación, mutar, insertar exactamente un movimiento y hacer commit.
// Cualquier fallo de validación o de conservación aborta la transacción
// completa antes de que ninguna mutación sea visible.
type TransitionUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	colorRepo   repository.ColorVariantRepository
}

// NewTransitionUseCase construye el motor.
func NewTransitionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	colorRepo repository.ColorVariantRepository,
) *TransitionUseCase {
	return &TransitionUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		colorRepo:   colorRepo,
	}
}

// TransitionResult balances actualizados y movimiento creado por una
// operación exitosa.
type TransitionResult struct {
	Balances []*entity.StageBalance
	Movement *entity.ProductionMovement
}

// InputDTO entrada para Input.
type InputDTO struct {
	ProductID string
	Quantity  int64
	Notes     string
	CreatedBy string
}

// AdvanceDTO entrada para Advance. ToColorVariantID es obligatorio cuando
// ToStage es GLAZED y está prohibido en cualquier otro caso.
type AdvanceDTO struct {
	ProductID        string
	FromStage        entity.Stage
	ToStage          entity.Stage
	ToColorVariantID *string
	Quantity         int64
	Notes            string
	CreatedBy        string
}

// AdjustDTO entrada para Adjust: set absoluto de la llave a TargetQuantity.
type AdjustDTO struct {
	ProductID      string
	Stage          entity.Stage
	ColorVariantID *string
	TargetQuantity int64
	Notes          string
	CreatedBy      string
}

// ShrinkDTO entrada para Shrink (merma/rotura).
type ShrinkDTO struct {
	ProductID      string
	Stage          entity.Stage
	ColorVariantID *string
	Quantity       int64
	Notes          string
	CreatedBy      string
}

// Input inyecta piezas nuevas al pipeline: suma Quantity al balance crudo
// (RAW, color nil) del producto. No hay balance origen que verificar.
func (uc *TransitionUseCase) Input(ctx context.Context, in InputDTO) (*TransitionResult, error) {
	if in.CreatedBy == "" || in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	var result *TransitionResult
	err := uc.txRunner.Run(ctx, func(
		balanceRepo repository.StageBalanceRepository,
		movementRepo repository.ProductionMovementRepository,
	) error {
		balance, err := resolveForUpdate(ctx, balanceRepo, in.ProductID, entity.StageRaw, nil)
		if err != nil {
			return err
		}
		balance.Quantity += in.Quantity
		if err := balanceRepo.UpdateQuantity(ctx, in.ProductID, entity.StageRaw, nil, balance.Quantity); err != nil {
			return err
		}
		toStage := entity.StageRaw
		mov := &entity.ProductionMovement{
			ProductID: in.ProductID,
			Type:      entity.MovementTypeInput,
			ToStage:   &toStage,
			Quantity:  in.Quantity,
			Notes:     in.Notes,
			CreatedBy: in.CreatedBy,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = &TransitionResult{Balances: []*entity.StageBalance{balance}, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Advance mueve Quantity piezas de FromStage a ToStage. El débito del origen,
// el crédito del destino y el insert del movimiento son una unidad atómica:
// una aplicación parcial (débito sin crédito) nunca es observable.
func (uc *TransitionUseCase) Advance(ctx context.Context, in AdvanceDTO) (*TransitionResult, error) {
	if in.CreatedBy == "" || in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidTransition(in.FromStage, in.ToStage) {
		return nil, domain.ErrInvalidInput
	}
	// Color obligatorio si y solo si el destino es la etapa de esmaltado.
	if in.ToStage.RequiresColor() != (in.ToColorVariantID != nil) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.checkColor(ctx, in.ToColorVariantID); err != nil {
		return nil, err
	}

	var result *TransitionResult
	err := uc.txRunner.Run(ctx, func(
		balanceRepo repository.StageBalanceRepository,
		movementRepo repository.ProductionMovementRepository,
	) error {
		// Origen primero, destino después: el orden de bloqueo sigue el orden
		// del pipeline y evita interbloqueos entre avances concurrentes.
		source, err := resolveForUpdate(ctx, balanceRepo, in.ProductID, in.FromStage, nil)
		if err != nil {
			return err
		}
		if source.Quantity < in.Quantity {
			return &domain.InsufficientStockError{
				Stage:     string(in.FromStage),
				Available: source.Quantity,
				Requested: in.Quantity,
			}
		}
		dest, err := resolveForUpdate(ctx, balanceRepo, in.ProductID, in.ToStage, in.ToColorVariantID)
		if err != nil {
			return err
		}
		source.Quantity -= in.Quantity
		dest.Quantity += in.Quantity
		if err := balanceRepo.UpdateQuantity(ctx, in.ProductID, in.FromStage, nil, source.Quantity); err != nil {
			return err
		}
		if err := balanceRepo.UpdateQuantity(ctx, in.ProductID, in.ToStage, in.ToColorVariantID, dest.Quantity); err != nil {
			return err
		}
		fromStage, toStage := in.FromStage, in.ToStage
		mov := &entity.ProductionMovement{
			ProductID:        in.ProductID,
			Type:             entity.MovementTypeAdvance,
			FromStage:        &fromStage,
			ToStage:          &toStage,
			ToColorVariantID: in.ToColorVariantID,
			Quantity:         in.Quantity,
			Notes:            in.Notes,
			CreatedBy:        in.CreatedBy,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = &TransitionResult{Balances: []*entity.StageBalance{source, dest}, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Adjust fija el balance de la llave exactamente en TargetQuantity (set
// absoluto tras conteo físico, no delta relativo). Nunca falla por
// existencias insuficientes. El movimiento registra el delta firmado:
// delta >= 0 con ToStage, delta < 0 con FromStage.
func (uc *TransitionUseCase) Adjust(ctx context.Context, in AdjustDTO) (*TransitionResult, error) {
	if in.CreatedBy == "" || in.ProductID == "" || in.TargetQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validateStageKey(in.Stage, in.ColorVariantID); err != nil {
		return nil, err
	}
	if err := uc.checkProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.checkColor(ctx, in.ColorVariantID); err != nil {
		return nil, err
	}

	var result *TransitionResult
	err := uc.txRunner.Run(ctx, func(
		balanceRepo repository.StageBalanceRepository,
		movementRepo repository.ProductionMovementRepository,
	) error {
		balance, err := resolveForUpdate(ctx, balanceRepo, in.ProductID, in.Stage, in.ColorVariantID)
		if err != nil {
			return err
		}
		delta := in.TargetQuantity - balance.Quantity
		balance.Quantity = in.TargetQuantity
		if err := balanceRepo.UpdateQuantity(ctx, in.ProductID, in.Stage, in.ColorVariantID, balance.Quantity); err != nil {
			return err
		}
		stage := in.Stage
		mov := &entity.ProductionMovement{
			ProductID: in.ProductID,
			Type:      entity.MovementTypeAdjustment,
			Quantity:  delta,
			Notes:     in.Notes,
			CreatedBy: in.CreatedBy,
		}
		if delta < 0 {
			mov.FromStage = &stage
			mov.FromColorVariantID = in.ColorVariantID
		} else {
			mov.ToStage = &stage
			mov.ToColorVariantID = in.ColorVariantID
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = &TransitionResult{Balances: []*entity.StageBalance{balance}, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Shrink registra merma (rotura, pérdida): descuenta Quantity de la llave
// verificando disponibilidad, con el mismo chequeo que Advance.
func (uc *TransitionUseCase) Shrink(ctx context.Context, in ShrinkDTO) (*TransitionResult, error) {
	if in.CreatedBy == "" || in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validateStageKey(in.Stage, in.ColorVariantID); err != nil {
		return nil, err
	}
	if err := uc.checkProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.checkColor(ctx, in.ColorVariantID); err != nil {
		return nil, err
	}

	var result *TransitionResult
	err := uc.txRunner.Run(ctx, func(
		balanceRepo repository.StageBalanceRepository,
		movementRepo repository.ProductionMovementRepository,
	) error {
		balance, err := resolveForUpdate(ctx, balanceRepo, in.ProductID, in.Stage, in.ColorVariantID)
		if err != nil {
			return err
		}
		if balance.Quantity < in.Quantity {
			return &domain.InsufficientStockError{
				Stage:     string(in.Stage),
				Available: balance.Quantity,
				Requested: in.Quantity,
			}
		}
		balance.Quantity -= in.Quantity
		if err := balanceRepo.UpdateQuantity(ctx, in.ProductID, in.Stage, in.ColorVariantID, balance.Quantity); err != nil {
			return err
		}
		stage := in.Stage
		mov := &entity.ProductionMovement{
			ProductID:          in.ProductID,
			Type:               entity.MovementTypeShrink,
			FromStage:          &stage,
			FromColorVariantID: in.ColorVariantID,
			Quantity:           -in.Quantity,
			Notes:              in.Notes,
			CreatedBy:          in.CreatedBy,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = &TransitionResult{Balances: []*entity.StageBalance{balance}, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveForUpdate resolver de balances: garantiza la fila de la llave
// (insert-if-absent atómico) y la lee bloqueándola, todo dentro de la
// transacción del caller. Si la operación aborta después, la fila creada se
// revierte junto con el resto.
func resolveForUpdate(
	ctx context.Context,
	balanceRepo repository.StageBalanceRepository,
	productID string,
	stage entity.Stage,
	colorVariantID *string,
) (*entity.StageBalance, error) {
	if err := balanceRepo.EnsureRow(ctx, productID, stage, colorVariantID); err != nil {
		return nil, err
	}
	return balanceRepo.GetForUpdate(ctx, productID, stage, colorVariantID)
}

// validateStageKey valida la llave (etapa, color): etapa conocida y color
// presente si y solo si la etapa es la de esmaltado. Así toda operación
// apunta a llaves con la misma forma que las que crea Advance.
func validateStageKey(stage entity.Stage, colorVariantID *string) error {
	if !stage.Valid() {
		return domain.ErrInvalidInput
	}
	if stage.RequiresColor() != (colorVariantID != nil) {
		return domain.ErrInvalidInput
	}
	return nil
}

// checkProduct valida que el producto exista en el catálogo.
func (uc *TransitionUseCase) checkProduct(ctx context.Context, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}

// checkColor valida que la variante de color exista, si viene.
func (uc *TransitionUseCase) checkColor(ctx context.Context, colorVariantID *string) error {
	if colorVariantID == nil {
		return nil
	}
	variant, err := uc.colorRepo.GetByID(ctx, *colorVariantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}
	return nil
}
