package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/jersey_checkout/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ErrRejected: корзина из JSON-файла не прошла проверку.
var ErrRejected = errors.New("cart rejected")

// PriceFile: считает корзины из файла (JSON: одна корзина; JSONL: по одной на строку)
// и пишет результат в writer. Возвращает краткую сводку.
func PriceFile(ctx context.Context, pricer ports.CartPricer, filePath string, format InputFormat, ow io.Writer) (string, error) {
	if format == FormatAuto {
		switch strings.ToLower(filepath.Ext(filePath)) {
		case ".jsonl", ".ndjson":
			format = FormatJSONL
		default:
			format = FormatJSON
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return PriceReader(ctx, pricer, file, format, ow)
}

// PriceReader: то же, что PriceFile, но для произвольного reader'а (stdin).
func PriceReader(ctx context.Context, pricer ports.CartPricer, ir io.Reader, format InputFormat, ow io.Writer) (string, error) {
	switch format {
	case FormatJSON, FormatAuto:
		raw, err := io.ReadAll(ir)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		order, err := PriceCartFromJSON(ctx, pricer, raw)
		if err != nil {
			return "0 priced / 1 rejected", fmt.Errorf("%w: %w", ErrRejected, err)
		}
		if err := json.NewEncoder(ow).Encode(NewOrderView(order)); err != nil {
			return "", fmt.Errorf("write json: %w", err)
		}
		return "1 priced / 0 rejected", nil

	case FormatJSONL:
		res, err := PriceJSONLStream(ctx, pricer, ir, ow)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d priced / %d rejected", res.PricedCount, res.RejectedCount), nil

	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
