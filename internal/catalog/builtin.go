package catalog

import (
	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/shopspring/decimal"
)

// Категории витрины.
const (
	CategoryBrasileirao = "brasileirao"
	CategoryLigas       = "ligas"
	CategorySelecoes    = "selecoes"
	CategoryRetro       = "retro"
)

func product(id, name, price, category string) domain.Product {
	return domain.Product{
		ID:          id,
		DisplayName: name,
		UnitPrice:   decimal.RequireFromString(price),
		Category:    category,
	}
}

// BuiltinProducts: статический каталог магазина.
// В продакшене источник меняется на Postgres (CHECKOUT_CATALOG_SOURCE=postgres),
// контракт валидатора при этом не меняется.
func BuiltinProducts() []domain.Product {
	return []domain.Product{
		product("flamengo-2024", "Flamengo Home 2024 - Oficial", "229.90", CategoryBrasileirao),
		product("palmeiras-2024", "Palmeiras Home 2024 - Oficial", "229.90", CategoryBrasileirao),
		product("corinthians-2024", "Corinthians Home 2024 - Oficial", "229.90", CategoryBrasileirao),
		product("sao-paulo-2024", "São Paulo FC Home 2024 - Oficial", "229.90", CategoryBrasileirao),
		product("gremio-2024", "Grêmio Home 2024 - Oficial", "219.90", CategoryBrasileirao),
		product("internacional-2024", "Internacional Home 2024 - Oficial", "219.90", CategoryBrasileirao),
		product("real-madrid-2024", "Real Madrid Home 2024/25", "299.90", CategoryLigas),
		product("barcelona-2024", "FC Barcelona Home 2024/25", "289.90", CategoryLigas),
		product("bayern-2024", "Bayern de Munique Home 2024/25", "289.90", CategoryLigas),
		product("psg-2024", "Paris Saint-Germain Home 2024/25", "299.90", CategoryLigas),
		product("man-city-2024", "Manchester City Home 2024/25", "299.90", CategoryLigas),
		product("liverpool-2024", "Liverpool Home 2024/25", "289.90", CategoryLigas),
		product("chelsea-2024", "Chelsea Home 2024/25", "289.90", CategoryLigas),
		product("juventus-2024", "Juventus Home 2024/25", "289.90", CategoryLigas),
		product("milan-2024", "AC Milan Home 2024/25", "289.90", CategoryLigas),
		product("brasil-2024", "Brasil Home 2024", "249.90", CategorySelecoes),
		product("argentina-2024", "Argentina Home 2024", "249.90", CategorySelecoes),
		product("franca-2024", "França Home 2024", "259.90", CategorySelecoes),
		product("alemanha-2024", "Alemanha Home 2024", "259.90", CategorySelecoes),
		product("portugal-2024", "Portugal Home 2024", "259.90", CategorySelecoes),
		product("inglaterra-2024", "Inglaterra Home 2024", "259.90", CategorySelecoes),
		product("italia-2024", "Itália Home 2024", "259.90", CategorySelecoes),
		product("espanha-2024", "Espanha Home 2024", "259.90", CategorySelecoes),
		product("holanda-2024", "Holanda Home 2024", "259.90", CategorySelecoes),
		product("croacia-2024", "Croácia Home 2024", "259.90", CategorySelecoes),
		product("brasil-retro-70", "Brasil Retrô Copa do Mundo 1970", "179.90", CategoryRetro),
		product("brasil-retro-94", "Brasil Retrô Copa do Mundo 1994", "179.90", CategoryRetro),
		product("flamengo-retro-80", "Flamengo Retrô Anos 80", "159.90", CategoryRetro),
		product("corinthians-retro-90", "Corinthians Retrô Anos 90", "159.90", CategoryRetro),
	}
}

// Builtin: каталог из BuiltinProducts.
func Builtin() *Catalog { return MustNew(BuiltinProducts()) }
