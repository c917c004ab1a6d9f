package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Gunvolt24/jersey_checkout/internal/catalog"
	"github.com/Gunvolt24/jersey_checkout/internal/repo/postgres"
	"github.com/Gunvolt24/jersey_checkout/pkg/pricing"
)

// CLI-приложение для офлайн-расчёта корзин по доверенному каталогу.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	dsn := flag.String("catalog-dsn", "", "postgres DSN to load the catalog from. If empty, the builtin catalog is used.")
	maxQty := flag.Int("max-qty", pricing.DefaultMaxQuantity, "max quantity per cart line")
	sizes := flag.String("sizes", strings.Join(pricing.DefaultSizes(), ","), "allowed sizes, comma separated")
	flag.Parse()

	ctx := context.Background()

	cat, err := loadCatalog(ctx, *dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		os.Exit(2)
	}
	pricer := pricing.NewCartPricer(cat, pricing.Policy{
		MaxQuantity: *maxQty,
		Sizes:       strings.Split(*sizes, ","),
	})

	format := pricing.InputFormat(*formatStr)

	var summary string
	// stdin вариант: считаем, что jsonl
	if *inputPath == "" {
		if format == pricing.FormatAuto {
			format = pricing.FormatJSONL
		}
		summary, err = pricing.PriceReader(ctx, pricer, os.Stdin, format, os.Stdout)
	} else {
		summary, err = pricing.PriceFile(ctx, pricer, *inputPath, format, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pricing: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "pricing ok (%s)\n", summary)
}

func loadCatalog(ctx context.Context, dsn string) (*catalog.Catalog, error) {
	if dsn == "" {
		return catalog.Builtin(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{DSN: dsn, MaxConns: 2})
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	return catalog.Load(ctx, postgres.NewCatalogRepository(pool))
}
