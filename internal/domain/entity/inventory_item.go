package entity

// UnlimitedStock marca un insumo sin control de existencias.
const UnlimitedStock int64 = -1

// InventoryItem representa un insumo del inventario de un comercio (arroz, vasos, salsa...).
// Stock == UnlimitedStock significa ilimitado; en otro caso es un conteo no negativo.
type InventoryItem struct {
	ID         string `json:"id" bson:"-"`
	MerchantID string `json:"merchantId" bson:"merchantId"`
	Name       string `json:"name" bson:"name"`
	Category   string `json:"category" bson:"category"`
	Unit       string `json:"unit" bson:"unit"`
	Stock      int64  `json:"stock" bson:"stock"`
}

// IsUnlimited indica si el insumo no descuenta existencias.
func (i InventoryItem) IsUnlimited() bool {
	return i.Stock == UnlimitedStock
}
