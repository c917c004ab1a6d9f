package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page: окно выборки для списочных эндпоинтов.
type Page struct {
	Limit  int
	Offset int
}

// ClampInt: ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParsePage - читает limit/offset из query с дефолтами и границами.
// Нечисловой limit -> дефолт, нечисловой или отрицательный offset -> 0.
func ParsePage(c *gin.Context, defaultLimit, maxLimit int) Page {
	p := Page{Limit: ClampInt(defaultLimit, 1, maxLimit)}
	if raw, ok := c.GetQuery("limit"); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			p.Limit = ClampInt(v, 1, maxLimit)
		}
	}
	if raw, ok := c.GetQuery("offset"); ok {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			p.Offset = v
		}
	}
	return p
}

// Bounds: индексы [lo, hi) окна в срезе длины n.
func (p Page) Bounds(n int) (lo, hi int) {
	lo = ClampInt(p.Offset, 0, n)
	hi = ClampInt(lo+p.Limit, lo, n)
	return lo, hi
}
