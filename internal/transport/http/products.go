package rest

import (
	"encoding/json"
	"net/http"

	"github.com/Gunvolt24/jersey_checkout/internal/catalog"
	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/pkg/httpx"
	"github.com/Gunvolt24/jersey_checkout/pkg/pricing"
	"github.com/gin-gonic/gin"
)

// productView: товар каталога на проводе; цена с двумя знаками.
type productView struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName"`
	UnitPrice   json.Number `json:"unitPrice"`
	Category    string      `json:"category,omitempty"`
}

type productListResponse struct {
	Items  []productView `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func newProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		UnitPrice:   pricing.AmountNumber(p.UnitPrice),
		Category:    p.Category,
	}
}

func (h *Handler) listProducts(c *gin.Context) {
	products := catalog.ByCategory(h.catalog, c.Query("category"))
	page := httpx.ParsePage(c, defaultProductsLimit, maxProductsLimit)
	lo, hi := page.Bounds(len(products))

	items := make([]productView, 0, hi-lo)
	for _, p := range products[lo:hi] {
		items = append(items, newProductView(p))
	}

	c.JSON(http.StatusOK, productListResponse{
		Items:  items,
		Total:  len(products),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (h *Handler) getProduct(c *gin.Context) {
	id := c.Param("id")
	p, ok := h.catalog.Lookup(id)
	if !ok {
		c.JSON(http.StatusNotFound, errorBody{
			ErrorKind: domain.KindUnknownProduct,
			Message:   "product not found",
			ProductID: id,
		})
		return
	}
	c.JSON(http.StatusOK, newProductView(p))
}
