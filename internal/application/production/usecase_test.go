package production_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estudiobarro/taller-api/internal/application/production"
	"github.com/estudiobarro/taller-api/internal/domain"
	"github.com/estudiobarro/taller-api/internal/domain/entity"
)

const testActor = "00000000-0000-0000-0000-000000000001"

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones del motor: escenarios base
// ──────────────────────────────────────────────────────────────────────────────

// Entrada de piezas crudas a un producto sin balances previos: el balance RAW
// queda en la cantidad ingresada y se registra exactamente un movimiento
// INPUT con to_stage=RAW y cantidad positiva.
func TestInput_ProductoNuevo(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Taza grande")

	res, err := uc.Input(context.Background(), production.InputDTO{
		ProductID: productID, Quantity: 100, Notes: "horneada del lunes", CreatedBy: testActor,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 100, store.quantity(productID, entity.StageRaw, nil))
	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.MovementTypeInput, mov.Type)
	require.NotNil(t, mov.ToStage)
	assert.Equal(t, entity.StageRaw, *mov.ToStage)
	assert.Nil(t, mov.FromStage)
	assert.EqualValues(t, 100, mov.Quantity)
	assert.Equal(t, testActor, mov.CreatedBy)

	require.NotNil(t, res.Movement)
	assert.NotZero(t, res.Movement.ID)
	require.Len(t, res.Balances, 1)
	assert.EqualValues(t, 100, res.Balances[0].Quantity)
}

// Avance RAW→FIRED: conservación exacta (el origen baja lo mismo que sube el
// destino) y un solo movimiento con ambas etapas.
func TestAdvance_RawAFired_Conservacion(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Plato hondo")
	_, err := uc.Input(context.Background(), production.InputDTO{ProductID: productID, Quantity: 100, CreatedBy: testActor})
	require.NoError(t, err)

	res, err := uc.Advance(context.Background(), production.AdvanceDTO{
		ProductID: productID, FromStage: entity.StageRaw, ToStage: entity.StageFired,
		Quantity: 40, CreatedBy: testActor,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 60, store.quantity(productID, entity.StageRaw, nil))
	assert.EqualValues(t, 40, store.quantity(productID, entity.StageFired, nil))
	// Suma origen+destino invariante ante el avance.
	assert.EqualValues(t, 100,
		store.quantity(productID, entity.StageRaw, nil)+store.quantity(productID, entity.StageFired, nil))

	require.Len(t, store.movements, 2)
	mov := store.movements[1]
	assert.Equal(t, entity.MovementTypeAdvance, mov.Type)
	require.NotNil(t, mov.FromStage)
	require.NotNil(t, mov.ToStage)
	assert.Equal(t, entity.StageRaw, *mov.FromStage)
	assert.Equal(t, entity.StageFired, *mov.ToStage)
	assert.EqualValues(t, 40, mov.Quantity)

	require.Len(t, res.Balances, 2)
}

// Avance FIRED→GLAZED con variante de color: el destino se particiona por
// color y el movimiento registra to_color_variant_id.
func TestAdvance_FiredAGlazed_ConColor(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Matera")
	colorID := store.addColor("Verde jade")
	ctx := context.Background()
	_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: 30, CreatedBy: testActor})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, production.AdvanceDTO{
		ProductID: productID, FromStage: entity.StageRaw, ToStage: entity.StageFired,
		Quantity: 30, CreatedBy: testActor,
	})
	require.NoError(t, err)

	_, err = uc.Advance(ctx, production.AdvanceDTO{
		ProductID: productID, FromStage: entity.StageFired, ToStage: entity.StageGlazed,
		ToColorVariantID: &colorID, Quantity: 12, CreatedBy: testActor,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 18, store.quantity(productID, entity.StageFired, nil))
	assert.EqualValues(t, 12, store.quantity(productID, entity.StageGlazed, &colorID))

	mov := store.movements[len(store.movements)-1]
	require.NotNil(t, mov.ToColorVariantID)
	assert.Equal(t, colorID, *mov.ToColorVariantID)
}

// Avance que pide más de lo disponible: InsufficientStockError con
// disponible/pedido/faltante y ninguna mutación visible.
func TestAdvance_Insuficiente_DevuelveDetallesYNoMuta(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Taza grande")
	ctx := context.Background()
	_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: 60, CreatedBy: testActor})
	require.NoError(t, err)
	movsBefore := len(store.movements)

	_, err = uc.Advance(ctx, production.AdvanceDTO{
		ProductID: productID, FromStage: entity.StageRaw, ToStage: entity.StageFired,
		Quantity: 1000, CreatedBy: testActor,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, string(entity.StageRaw), insufficient.Stage)
	assert.EqualValues(t, 60, insufficient.Available)
	assert.EqualValues(t, 1000, insufficient.Requested)
	assert.EqualValues(t, 940, insufficient.Missing())

	// Rollback total: balances intactos y sin movimiento nuevo.
	assert.EqualValues(t, 60, store.quantity(productID, entity.StageRaw, nil))
	assert.EqualValues(t, 0, store.quantity(productID, entity.StageFired, nil))
	assert.Len(t, store.movements, movsBefore)
}

// Ajuste a la baja: set absoluto, delta negativo registrado con from_stage.
func TestAdjust_ALaBaja_RegistraDeltaConFromStage(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Plato hondo")
	ctx := context.Background()
	_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: 40, CreatedBy: testActor})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, production.AdvanceDTO{
		ProductID: productID, FromStage: entity.StageRaw, ToStage: entity.StageFired,
		Quantity: 40, CreatedBy: testActor,
	})
	require.NoError(t, err)

	_, err = uc.Adjust(ctx, production.AdjustDTO{
		ProductID: productID, Stage: entity.StageFired, TargetQuantity: 10,
		Notes: "conteo físico", CreatedBy: testActor,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 10, store.quantity(productID, entity.StageFired, nil))
	mov := store.movements[len(store.movements)-1]
	assert.Equal(t, entity.MovementTypeAdjustment, mov.Type)
	assert.EqualValues(t, -30, mov.Quantity)
	require.NotNil(t, mov.FromStage)
	assert.Equal(t, entity.StageFired, *mov.FromStage)
	assert.Nil(t, mov.ToStage)
}

// Ajuste al alza: delta positivo registrado con to_stage.
func TestAdjust_AlAlza_RegistraDeltaConToStage(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Matera")

	_, err := uc.Adjust(context.Background(), production.AdjustDTO{
		ProductID: productID, Stage: entity.StageRaw, TargetQuantity: 25, CreatedBy: testActor,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 25, store.quantity(productID, entity.StageRaw, nil))
	mov := store.movements[len(store.movements)-1]
	assert.EqualValues(t, 25, mov.Quantity)
	require.NotNil(t, mov.ToStage)
	assert.Equal(t, entity.StageRaw, *mov.ToStage)
	assert.Nil(t, mov.FromStage)
}

// Ajuste sin cambio (delta cero): igual registra un movimiento, con to_stage.
func TestAdjust_DeltaCero_RegistraMovimiento(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Taza grande")
	ctx := context.Background()
	_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: 15, CreatedBy: testActor})
	require.NoError(t, err)
	movsBefore := len(store.movements)

	_, err = uc.Adjust(ctx, production.AdjustDTO{
		ProductID: productID, Stage: entity.StageRaw, TargetQuantity: 15, CreatedBy: testActor,
	})
	require.NoError(t, err)

	require.Len(t, store.movements, movsBefore+1)
	mov := store.movements[len(store.movements)-1]
	assert.EqualValues(t, 0, mov.Quantity)
	assert.NotNil(t, mov.ToStage)
}

// Merma: descuenta con chequeo de disponibilidad y registra cantidad negativa.
func TestShrink_DescuentaYRegistraNegativo(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Plato hondo")
	ctx := context.Background()
	_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: 10, CreatedBy: testActor})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, production.AdvanceDTO{
		ProductID: productID, FromStage: entity.StageRaw, ToStage: entity.StageFired,
		Quantity: 10, CreatedBy: testActor,
	})
	require.NoError(t, err)

	_, err = uc.Shrink(ctx, production.ShrinkDTO{
		ProductID: productID, Stage: entity.StageFired, Quantity: 5,
		Notes: "rotura en horno", CreatedBy: testActor,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 5, store.quantity(productID, entity.StageFired, nil))
	mov := store.movements[len(store.movements)-1]
	assert.Equal(t, entity.MovementTypeShrink, mov.Type)
	assert.EqualValues(t, -5, mov.Quantity)
	require.NotNil(t, mov.FromStage)
	assert.Equal(t, entity.StageFired, *mov.FromStage)
	assert.Nil(t, mov.ToStage)
}

// Merma por encima de lo disponible: mismo error tipado que Advance.
func TestShrink_Insuficiente(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Matera")
	ctx := context.Background()
	_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: 3, CreatedBy: testActor})
	require.NoError(t, err)

	_, err = uc.Shrink(ctx, production.ShrinkDTO{
		ProductID: productID, Stage: entity.StageRaw, Quantity: 4, CreatedBy: testActor,
	})
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.EqualValues(t, 3, insufficient.Available)
	assert.EqualValues(t, 1, insufficient.Missing())
	assert.EqualValues(t, 3, store.quantity(productID, entity.StageRaw, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones: rechazos antes de tocar el storage
// ──────────────────────────────────────────────────────────────────────────────

func TestValidacion_RechazaAntesDeTocarStorage(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Taza grande")
	colorID := store.addColor("Azul cobalto")
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"input sin actor", func() error {
			_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: 1})
			return err
		}},
		{"input cantidad cero", func() error {
			_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: 0, CreatedBy: testActor})
			return err
		}},
		{"input cantidad negativa", func() error {
			_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: -5, CreatedBy: testActor})
			return err
		}},
		{"advance a glazed sin color", func() error {
			_, err := uc.Advance(ctx, production.AdvanceDTO{
				ProductID: productID, FromStage: entity.StageFired, ToStage: entity.StageGlazed,
				Quantity: 1, CreatedBy: testActor,
			})
			return err
		}},
		{"advance a fired con color", func() error {
			_, err := uc.Advance(ctx, production.AdvanceDTO{
				ProductID: productID, FromStage: entity.StageRaw, ToStage: entity.StageFired,
				ToColorVariantID: &colorID, Quantity: 1, CreatedBy: testActor,
			})
			return err
		}},
		{"advance con salto de etapa", func() error {
			_, err := uc.Advance(ctx, production.AdvanceDTO{
				ProductID: productID, FromStage: entity.StageRaw, ToStage: entity.StageGlazed,
				ToColorVariantID: &colorID, Quantity: 1, CreatedBy: testActor,
			})
			return err
		}},
		{"advance en retroceso", func() error {
			_, err := uc.Advance(ctx, production.AdvanceDTO{
				ProductID: productID, FromStage: entity.StageFired, ToStage: entity.StageRaw,
				Quantity: 1, CreatedBy: testActor,
			})
			return err
		}},
		{"adjust target negativo", func() error {
			_, err := uc.Adjust(ctx, production.AdjustDTO{
				ProductID: productID, Stage: entity.StageRaw, TargetQuantity: -1, CreatedBy: testActor,
			})
			return err
		}},
		{"adjust con color en etapa cruda", func() error {
			_, err := uc.Adjust(ctx, production.AdjustDTO{
				ProductID: productID, Stage: entity.StageRaw, ColorVariantID: &colorID,
				TargetQuantity: 5, CreatedBy: testActor,
			})
			return err
		}},
		{"shrink etapa desconocida", func() error {
			_, err := uc.Shrink(ctx, production.ShrinkDTO{
				ProductID: productID, Stage: entity.Stage("PAINTED"), Quantity: 1, CreatedBy: testActor,
			})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			// Nada llegó al storage: ni balances ni movimientos.
			assert.Empty(t, store.movements)
			assert.Empty(t, store.balances)
		})
	}
}

func TestProductoInexistente_NotFound(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)

	_, err := uc.Input(context.Background(), production.InputDTO{
		ProductID: "no-existe", Quantity: 1, CreatedBy: testActor,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestColorInexistente_NotFound(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Matera")
	fakeColor := "11111111-1111-1111-1111-111111111111"

	_, err := uc.Advance(context.Background(), production.AdvanceDTO{
		ProductID: productID, FromStage: entity.StageFired, ToStage: entity.StageGlazed,
		ToColorVariantID: &fakeColor, Quantity: 1, CreatedBy: testActor,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: fallo inyectado entre el débito y el crédito de Advance
// ──────────────────────────────────────────────────────────────────────────────

// Si el crédito del destino falla después del débito del origen, el rollback
// deja ambos balances exactamente como estaban: la aplicación parcial nunca
// es observable.
func TestAdvance_FalloEntreDebitoYCredito_RollbackTotal(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Taza grande")
	ctx := context.Background()
	_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: 50, CreatedBy: testActor})
	require.NoError(t, err)
	movsBefore := len(store.movements)

	// La primera UpdateQuantity de la tx es el débito; la segunda, el crédito.
	store.failUpdateAt = 2
	_, err = uc.Advance(ctx, production.AdvanceDTO{
		ProductID: productID, FromStage: entity.StageRaw, ToStage: entity.StageFired,
		Quantity: 20, CreatedBy: testActor,
	})
	store.failUpdateAt = 0
	require.ErrorIs(t, err, errInjected)

	assert.EqualValues(t, 50, store.quantity(productID, entity.StageRaw, nil))
	assert.EqualValues(t, 0, store.quantity(productID, entity.StageFired, nil))
	assert.Len(t, store.movements, movsBefore)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades: no-negatividad y reconciliación del log
// ──────────────────────────────────────────────────────────────────────────────

// reconcile suma firmada del log por llave, partiendo de cero. Debe igualar
// el balance vigente de cada llave (invariante de auditoría).
func reconcile(store *memStore) map[balanceKey]int64 {
	sums := map[balanceKey]int64{}
	for _, m := range store.movements {
		switch {
		case m.Type == entity.MovementTypeAdvance:
			sums[keyOf(m.ProductID, *m.FromStage, nil)] -= m.Quantity
			sums[keyOf(m.ProductID, *m.ToStage, m.ToColorVariantID)] += m.Quantity
		case m.ToStage != nil:
			sums[keyOf(m.ProductID, *m.ToStage, m.ToColorVariantID)] += m.Quantity
		default:
			sums[keyOf(m.ProductID, *m.FromStage, m.FromColorVariantID)] += m.Quantity
		}
	}
	return sums
}

func assertInvariants(t *testing.T, store *memStore) {
	t.Helper()
	for k, b := range store.balances {
		assert.GreaterOrEqual(t, b.Quantity, int64(0), "balance negativo en %+v", k)
	}
	sums := reconcile(store)
	for k, b := range store.balances {
		assert.Equal(t, b.Quantity, sums[k], "log no reconcilia para %+v", k)
	}
	for k, sum := range sums {
		assert.Equal(t, store.balances[k].Quantity, sum, "suma del log sin balance para %+v", k)
	}
}

func TestReconciliacion_SecuenciaConocida(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)
	productID := store.addProduct("Taza grande")
	colorID := store.addColor("Miel")
	ctx := context.Background()

	_, err := uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: 100, CreatedBy: testActor})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, production.AdvanceDTO{ProductID: productID, FromStage: entity.StageRaw, ToStage: entity.StageFired, Quantity: 40, CreatedBy: testActor})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, production.AdvanceDTO{ProductID: productID, FromStage: entity.StageFired, ToStage: entity.StageGlazed, ToColorVariantID: &colorID, Quantity: 25, CreatedBy: testActor})
	require.NoError(t, err)
	_, err = uc.Adjust(ctx, production.AdjustDTO{ProductID: productID, Stage: entity.StageFired, TargetQuantity: 10, CreatedBy: testActor})
	require.NoError(t, err)
	_, err = uc.Shrink(ctx, production.ShrinkDTO{ProductID: productID, Stage: entity.StageGlazed, ColorVariantID: &colorID, Quantity: 5, CreatedBy: testActor})
	require.NoError(t, err)

	assert.EqualValues(t, 60, store.quantity(productID, entity.StageRaw, nil))
	assert.EqualValues(t, 10, store.quantity(productID, entity.StageFired, nil))
	assert.EqualValues(t, 20, store.quantity(productID, entity.StageGlazed, &colorID))
	assertInvariants(t, store)
}

// Secuencias aleatorias de operaciones: después de cada una (exitosa o no) se
// mantienen la no-negatividad de todos los balances y la reconciliación del
// log. Los fallos esperados (insuficiencia) no ensucian el estado.
func TestPropiedad_SecuenciasAleatorias(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	store := newMemStore()
	uc := newEngine(store)
	ctx := context.Background()

	products := []string{store.addProduct("Taza grande"), store.addProduct("Plato hondo"), store.addProduct("Matera")}
	colors := []string{store.addColor("Verde jade"), store.addColor("Azul cobalto")}

	for i := 0; i < 500; i++ {
		productID := products[rng.Intn(len(products))]
		colorID := colors[rng.Intn(len(colors))]
		qty := int64(rng.Intn(30) + 1)

		var err error
		switch rng.Intn(5) {
		case 0:
			_, err = uc.Input(ctx, production.InputDTO{ProductID: productID, Quantity: qty, CreatedBy: testActor})
		case 1:
			_, err = uc.Advance(ctx, production.AdvanceDTO{
				ProductID: productID, FromStage: entity.StageRaw, ToStage: entity.StageFired,
				Quantity: qty, CreatedBy: testActor,
			})
		case 2:
			_, err = uc.Advance(ctx, production.AdvanceDTO{
				ProductID: productID, FromStage: entity.StageFired, ToStage: entity.StageGlazed,
				ToColorVariantID: &colorID, Quantity: qty, CreatedBy: testActor,
			})
		case 3:
			stage := entity.StageFired
			var color *string
			if rng.Intn(2) == 0 {
				stage = entity.StageGlazed
				color = &colorID
			}
			_, err = uc.Adjust(ctx, production.AdjustDTO{
				ProductID: productID, Stage: stage, ColorVariantID: color,
				TargetQuantity: int64(rng.Intn(50)), CreatedBy: testActor,
			})
		case 4:
			_, err = uc.Shrink(ctx, production.ShrinkDTO{
				ProductID: productID, Stage: entity.StageRaw, Quantity: qty, CreatedBy: testActor,
			})
		}
		if err != nil {
			// Única falla legítima en esta secuencia: insuficiencia.
			require.ErrorIs(t, err, domain.ErrInsufficientStock, "operación %d", i)
		}
		assertInvariants(t, store)
	}
}
