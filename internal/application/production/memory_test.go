package production_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/estudiobarro/taller-api/internal/application/production"
	"github.com/estudiobarro/taller-api/internal/domain"
	"github.com/estudiobarro/taller-api/internal/domain/entity"
	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria del storage: implementan los puertos de repositorio y el
// TxRunner con semántica de snapshot/rollback, para ejercitar el motor sin
// PostgreSQL. El rollback restaura el estado exacto previo a la transacción,
// igual que haría un ROLLBACK real.
// ──────────────────────────────────────────────────────────────────────────────

var errInjected = errors.New("fallo inyectado")

type balanceKey struct {
	productID string
	stage     entity.Stage
	hasColor  bool
	color     string
}

func keyOf(productID string, stage entity.Stage, color *string) balanceKey {
	k := balanceKey{productID: productID, stage: stage}
	if color != nil {
		k.hasColor = true
		k.color = *color
	}
	return k
}

// memStore estado compartido de los dobles: balances, log de movimientos y
// catálogo. failUpdateAt > 0 hace fallar la N-ésima llamada a UpdateQuantity
// de la transacción en curso (para tests de atomicidad).
type memStore struct {
	balances  map[balanceKey]entity.StageBalance
	movements []entity.ProductionMovement
	nextID    int64
	products  map[string]entity.Product
	colors    map[string]entity.ColorVariant

	failUpdateAt int
	updateCalls  int
}

func newMemStore() *memStore {
	return &memStore{
		balances: map[balanceKey]entity.StageBalance{},
		nextID:   1,
		products: map[string]entity.Product{},
		colors:   map[string]entity.ColorVariant{},
	}
}

func (s *memStore) addProduct(name string) string {
	id := uuid.New().String()
	s.products[id] = entity.Product{ID: id, SKU: "SKU-" + name, Name: name, Active: true}
	return id
}

func (s *memStore) addColor(name string) string {
	id := uuid.New().String()
	s.colors[id] = entity.ColorVariant{ID: id, Name: name}
	return id
}

func (s *memStore) quantity(productID string, stage entity.Stage, color *string) int64 {
	return s.balances[keyOf(productID, stage, color)].Quantity
}

// memTxRunner copia el estado al entrar y lo restaura si fn falla.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	balanceRepo repository.StageBalanceRepository,
	movementRepo repository.ProductionMovementRepository,
) error) error {
	snapshot := map[balanceKey]entity.StageBalance{}
	for k, v := range r.store.balances {
		snapshot[k] = v
	}
	movLen := len(r.store.movements)
	nextID := r.store.nextID
	r.store.updateCalls = 0

	err := fn(&memBalanceRepo{store: r.store}, &memMovementRepo{store: r.store})
	if err != nil {
		r.store.balances = snapshot
		r.store.movements = r.store.movements[:movLen]
		r.store.nextID = nextID
		return err
	}
	return nil
}

type memBalanceRepo struct {
	store *memStore
}

func (r *memBalanceRepo) EnsureRow(_ context.Context, productID string, stage entity.Stage, color *string) error {
	k := keyOf(productID, stage, color)
	if _, ok := r.store.balances[k]; !ok {
		r.store.balances[k] = entity.StageBalance{
			ProductID:      productID,
			Stage:          stage,
			ColorVariantID: color,
			UpdatedAt:      time.Now(),
		}
	}
	return nil
}

func (r *memBalanceRepo) GetForUpdate(_ context.Context, productID string, stage entity.Stage, color *string) (*entity.StageBalance, error) {
	b, ok := r.store.balances[keyOf(productID, stage, color)]
	if !ok {
		b = entity.StageBalance{ProductID: productID, Stage: stage, ColorVariantID: color}
	}
	return &b, nil
}

func (r *memBalanceRepo) UpdateQuantity(_ context.Context, productID string, stage entity.Stage, color *string, quantity int64) error {
	r.store.updateCalls++
	if r.store.failUpdateAt > 0 && r.store.updateCalls == r.store.failUpdateAt {
		return errInjected
	}
	if quantity < 0 {
		// Equivalente al CHECK quantity >= 0 del esquema.
		return domain.ErrConflict
	}
	k := keyOf(productID, stage, color)
	b := r.store.balances[k]
	b.ProductID, b.Stage, b.ColorVariantID = productID, stage, color
	b.Quantity = quantity
	b.UpdatedAt = time.Now()
	r.store.balances[k] = b
	return nil
}

var stageOrder = map[entity.Stage]int{entity.StageRaw: 0, entity.StageFired: 1, entity.StageGlazed: 2}

func (r *memBalanceRepo) ListOnHand(_ context.Context) ([]*entity.OnHandItem, error) {
	var items []*entity.OnHandItem
	for _, b := range r.store.balances {
		if b.Quantity <= 0 {
			continue
		}
		p := r.store.products[b.ProductID]
		item := &entity.OnHandItem{
			ProductID:   b.ProductID,
			ProductName: p.Name,
			SKU:         p.SKU,
			Stage:       b.Stage,
			Quantity:    b.Quantity,
			UpdatedAt:   b.UpdatedAt,
		}
		if b.ColorVariantID != nil {
			name := r.store.colors[*b.ColorVariantID].Name
			item.ColorName = &name
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ProductName != items[j].ProductName {
			return items[i].ProductName < items[j].ProductName
		}
		if items[i].Stage != items[j].Stage {
			return stageOrder[items[i].Stage] < stageOrder[items[j].Stage]
		}
		var ci, cj string
		if items[i].ColorName != nil {
			ci = *items[i].ColorName
		}
		if items[j].ColorName != nil {
			cj = *items[j].ColorName
		}
		return ci < cj
	})
	return items, nil
}

type memMovementRepo struct {
	store *memStore
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.ProductionMovement) error {
	m.ID = r.store.nextID
	r.store.nextID++
	m.CreatedAt = time.Now()
	r.store.movements = append(r.store.movements, *m)
	return nil
}

func (r *memMovementRepo) ListRecent(_ context.Context, limit int) ([]*entity.MovementHistoryItem, error) {
	var items []*entity.MovementHistoryItem
	for i := len(r.store.movements) - 1; i >= 0 && len(items) < limit; i-- {
		m := r.store.movements[i]
		p := r.store.products[m.ProductID]
		item := &entity.MovementHistoryItem{
			ID:          m.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
			Type:        m.Type,
			FromStage:   m.FromStage,
			ToStage:     m.ToStage,
			Quantity:    m.Quantity,
			Notes:       m.Notes,
			CreatedBy:   m.CreatedBy,
			CreatedAt:   m.CreatedAt,
		}
		colorID := m.ToColorVariantID
		if colorID == nil {
			colorID = m.FromColorVariantID
		}
		if colorID != nil {
			name := r.store.colors[*colorID].Name
			item.ColorName = &name
		}
		items = append(items, item)
	}
	return items, nil
}

// memCatalog implementa los repos de catálogo sobre el mismo memStore.
type memCatalog struct {
	store *memStore
}

func (c *memCatalog) Create(_ context.Context, p *entity.Product) error {
	c.store.products[p.ID] = *p
	return nil
}

func (c *memCatalog) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := c.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *memCatalog) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range c.store.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

func (c *memCatalog) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range c.store.products {
		cp := p
		list = append(list, &cp)
	}
	return list, nil
}

func (c *memCatalog) Update(_ context.Context, p *entity.Product) error {
	c.store.products[p.ID] = *p
	return nil
}

type memColors struct {
	store *memStore
}

func (c *memColors) Create(_ context.Context, v *entity.ColorVariant) error {
	c.store.colors[v.ID] = *v
	return nil
}

func (c *memColors) GetByID(_ context.Context, id string) (*entity.ColorVariant, error) {
	v, ok := c.store.colors[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (c *memColors) List(_ context.Context) ([]*entity.ColorVariant, error) {
	var list []*entity.ColorVariant
	for _, v := range c.store.colors {
		cv := v
		list = append(list, &cv)
	}
	return list, nil
}

// Verificación de contratos.
var (
	_ repository.StageBalanceRepository       = (*memBalanceRepo)(nil)
	_ repository.ProductionMovementRepository = (*memMovementRepo)(nil)
	_ repository.ProductRepository            = (*memCatalog)(nil)
	_ repository.ColorVariantRepository       = (*memColors)(nil)
	_ production.TxRunner                     = (*memTxRunner)(nil)
)

// newEngine arma el motor sobre un memStore nuevo.
func newEngine(store *memStore) *production.TransitionUseCase {
	return production.NewTransitionUseCase(
		&memTxRunner{store: store},
		&memCatalog{store: store},
		&memColors{store: store},
	)
}
