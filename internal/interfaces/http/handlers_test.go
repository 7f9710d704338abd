package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comanda-api/internal/application/billing"
	"github.com/jhoicas/Comanda-api/internal/application/inventory"
	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/receipt"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Comanda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Comanda-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	dishes map[string]*entity.Dish
	items  map[string]entity.InventoryItem
	orders map[string]*entity.Order
	movs   []entity.InventoryMovement
}

func (s *memStore) ListByIDs(_ context.Context, _ string, ids []string) (map[string]*entity.Dish, error) {
	out := map[string]*entity.Dish{}
	for _, id := range ids {
		if d, ok := s.dishes[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

type itemRepo struct{ s *memStore }

func (r itemRepo) ListByIDs(_ context.Context, _ string, ids []string) ([]entity.InventoryItem, error) {
	var out []entity.InventoryItem
	for _, id := range ids {
		if it, ok := r.s.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

type orderRepo struct{ s *memStore }

func (r orderRepo) GetByID(_ context.Context, _, id string) (*entity.Order, error) {
	return r.s.orders[id], nil
}

// txRepos opera directo sobre memStore; suficiente para los caminos felices y de rechazo.
type txRepos struct{ s *memStore }

func (t txRepos) GetForUpdate(_ context.Context, _, id string) (*entity.InventoryItem, error) {
	it, ok := t.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (t txRepos) UpdateStock(_ context.Context, _, id string, stock int64) error {
	it := t.s.items[id]
	it.Stock = stock
	t.s.items[id] = it
	return nil
}

func (t txRepos) Create(_ context.Context, m *entity.InventoryMovement) error {
	t.s.movs = append(t.s.movs, *m)
	return nil
}

func (t txRepos) ExistsForOrder(_ context.Context, _, orderID string) (bool, error) {
	for _, m := range t.s.movs {
		if m.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (t txRepos) Run(ctx context.Context, fn func(context.Context, repository.StockRepository, repository.InventoryMovementRepository) error) error {
	return fn(ctx, t, t)
}

type stubPDF struct{}

func (stubPDF) GenerateReceiptPDF(context.Context, *receipt.Receipt) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

type fixedBills struct{}

func (fixedBills) Next(context.Context) (string, error) { return "1234567890", nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore() *memStore {
	mult := dec("2")
	return &memStore{
		dishes: map[string]*entity.Dish{
			"bowl": {
				ID: "bowl", Name: "Bowl", Price: dec("50"),
				InventoryConfig: &entity.InventoryConfig{
					BaseInventory: []entity.BaseInventoryEntry{{InventoryID: "rice", Quantity: dec("1")}},
					ConditionalInventory: []entity.ConditionalInventoryEntry{{
						InventoryID: "cup", BaseQuantity: dec("1"),
						Conditions: []entity.InventoryCondition{{OptionType: "size", OptionValue: "large", Multiplier: &mult}},
					}},
				},
			},
		},
		items: map[string]entity.InventoryItem{
			"rice": {ID: "rice", Name: "Arroz", Stock: 10},
			"cup":  {ID: "cup", Name: "Vaso", Stock: 3},
		},
		orders: map[string]*entity.Order{
			"o1": {ID: "o1", TableNumber: "5", Items: []entity.OrderItem{
				{DishID: "bowl", Name: "Bowl", Quantity: 1, Price: dec("50"),
					SelectedOptions: entity.SelectedOptions{"size": entity.TextOption("large")}},
			}},
			"big":   {ID: "big", Items: []entity.OrderItem{{DishID: "bowl", Quantity: 5}}},
			"empty": {ID: "empty"},
		},
	}
}

func newAPI(s *memStore) *fiber.App {
	usage := inventory.NewUsageUseCase(s, itemRepo{s})
	deduct := inventory.NewDeductStockUseCase(txRepos{s}, orderRepo{s}, usage, nil)
	receipts := billing.NewReceiptUseCase(orderRepo{s}, receipt.NewGenerator(fixedBills{}), "Comanda", nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		UsageUC:   usage,
		DeductUC:  deduct,
		ReceiptUC: receipts,
		PDFUC:     billing.NewReceiptPDFUseCase(receipts, stubPDF{}),
		JWTSecret: testJWTSecret,
	})
	return app
}

func post(t *testing.T, app *fiber.App, path, role, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestUsage_DevuelveConsumoAgregado(t *testing.T) {
	resp, raw := post(t, newAPI(newStore()), "/api/inventory/usage", pkgjwt.RoleWaiter,
		`{"items":[{"dishId":"bowl","quantity":2,"selectedOptions":{"size":"large"}}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var body struct {
		Usage map[string]decimal.Decimal `json:"usage"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, dec("2").Equal(body.Usage["rice"]))
	assert.True(t, dec("4").Equal(body.Usage["cup"]))
}

func TestUsage_AceptaPlatoConIDDeMongo(t *testing.T) {
	resp, raw := post(t, newAPI(newStore()), "/api/inventory/usage", pkgjwt.RoleWaiter,
		`{"items":[{"dish":{"_id":"bowl","name":"Bowl"},"quantity":1}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), `"rice"`)
}

func TestUsage_ValidaBody(t *testing.T) {
	app := newAPI(newStore())

	resp, _ := post(t, app, "/api/inventory/usage", pkgjwt.RoleWaiter, `{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := post(t, app, "/api/inventory/usage", pkgjwt.RoleWaiter, `{"items":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "INVALID_BODY")

	resp, _ = post(t, app, "/api/inventory/usage", pkgjwt.RoleWaiter, `{"items":[{"dishId":"pizza"}]}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = post(t, app, "/api/receipts/merge", pkgjwt.RoleCashier, `{"items":[{"dishId":"bowl","quantity":-1,"price":"5"}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "quantity")
}

func TestCheck_ReportaDeficit(t *testing.T) {
	resp, raw := post(t, newAPI(newStore()), "/api/inventory/check", pkgjwt.RoleCashier,
		`{"items":[{"dishId":"bowl","quantity":2,"selectedOptions":{"size":"large"}}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var body struct {
		IsSufficient      bool `json:"isSufficient"`
		InsufficientItems []struct {
			InventoryID string          `json:"inventoryId"`
			Shortfall   decimal.Decimal `json:"shortfall"`
		} `json:"insufficientItems"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.IsSufficient)
	require.Len(t, body.InsufficientItems, 1)
	assert.Equal(t, "cup", body.InsufficientItems[0].InventoryID)
	assert.True(t, dec("1").Equal(body.InsufficientItems[0].Shortfall))
}

func TestUsageDetails_ListaInsumos(t *testing.T) {
	resp, raw := post(t, newAPI(newStore()), "/api/inventory/usage-details", pkgjwt.RoleCashier,
		`{"items":[{"dishId":"bowl"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var body struct {
		Total int `json:"total"`
		Items []struct {
			InventoryID  string `json:"inventoryId"`
			IsSufficient bool   `json:"isSufficient"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Items, 2)
	assert.Equal(t, "cup", body.Items[0].InventoryID)
	assert.Equal(t, "rice", body.Items[1].InventoryID)
}

func TestDeductStock_SoloAdminOManager(t *testing.T) {
	resp, _ := post(t, newAPI(newStore()), "/api/orders/o1/deduct-stock", pkgjwt.RoleWaiter, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeductStock_Descuenta(t *testing.T) {
	s := newStore()
	resp, raw := post(t, newAPI(s), "/api/orders/o1/deduct-stock", pkgjwt.RoleManager, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	assert.EqualValues(t, 9, s.items["rice"].Stock)
	assert.EqualValues(t, 1, s.items["cup"].Stock)
	assert.Len(t, s.movs, 2)
	assert.Equal(t, testUserID, s.movs[0].CreatedBy)
}

func TestDeductStock_SegundoDescuento409(t *testing.T) {
	s := newStore()
	app := newAPI(s)
	resp, raw := post(t, app, "/api/orders/o1/deduct-stock", pkgjwt.RoleManager, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = post(t, app, "/api/orders/o1/deduct-stock", pkgjwt.RoleManager, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "STOCK_ALREADY_DEDUCTED")
	assert.EqualValues(t, 9, s.items["rice"].Stock)
	assert.Len(t, s.movs, 2)
}

func TestDeductStock_Insuficiente409ConDetalle(t *testing.T) {
	s := newStore()
	resp, raw := post(t, newAPI(s), "/api/orders/big/deduct-stock", pkgjwt.RoleAdmin, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), "INSUFFICIENT_STOCK")
	assert.Contains(t, string(raw), `"inventoryId":"cup"`)
	assert.EqualValues(t, 10, s.items["rice"].Stock)
	assert.Empty(t, s.movs)
}

func TestDeductStock_PedidoSinItems422(t *testing.T) {
	resp, raw := post(t, newAPI(newStore()), "/api/orders/empty/deduct-stock", pkgjwt.RoleAdmin, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(raw), "ORDER_WITHOUT_ITEMS")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recibos
// ──────────────────────────────────────────────────────────────────────────────

func TestMerge_AgrupaLineas(t *testing.T) {
	resp, raw := post(t, newAPI(newStore()), "/api/receipts/merge", pkgjwt.RoleCashier, `{"items":[
		{"dishId":"coffee","name":"Café","quantity":1,"price":"50","selectedOptions":{"size":"large"}},
		{"dishId":"tea","name":"Té","quantity":1,"price":"30"},
		{"dishId":"coffee","name":"Café","quantity":2,"price":"50","selectedOptions":{"size":"large"}}
	]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var body struct {
		Items []struct {
			DishID     string          `json:"dishId"`
			Quantity   int             `json:"quantity"`
			TotalPrice decimal.Decimal `json:"totalPrice"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Items, 2)
	assert.Equal(t, "coffee", body.Items[0].DishID)
	assert.Equal(t, 3, body.Items[0].Quantity)
	assert.True(t, dec("150").Equal(body.Items[0].TotalPrice))
}

func TestGenerateReceipt_SinBody(t *testing.T) {
	resp, raw := post(t, newAPI(newStore()), "/api/orders/o1/receipt", pkgjwt.RoleCashier, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "1234567890", body["billNumber"])
	assert.Equal(t, "5", body["tableNumber"])
	assert.Equal(t, "Comanda", body["storeName"])
	assert.Equal(t, testUserID, body["employeeId"])
}

func TestGenerateReceipt_NumeroDeCuentaInvalido(t *testing.T) {
	app := newAPI(newStore())
	resp, raw := post(t, app, "/api/orders/o1/receipt", pkgjwt.RoleCashier, `{"billNumber":"12ab"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "billNumber")

	resp, _ = post(t, app, "/api/orders/o1/receipt", pkgjwt.RoleCashier, `{"billNumber":"0000000000"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateReceipt_PedidoInexistente(t *testing.T) {
	resp, _ := post(t, newAPI(newStore()), "/api/orders/nope/receipt", pkgjwt.RoleCashier, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReceiptPDF_Adjunto(t *testing.T) {
	resp, raw := post(t, newAPI(newStore()), "/api/orders/o1/receipt.pdf", pkgjwt.RoleCashier, `{"billNumber":"5555555555"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "recibo_5555555555.pdf")
	assert.Equal(t, "%PDF-stub", string(raw))
}
