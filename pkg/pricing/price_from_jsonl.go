package pricing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
)

// JSONLResult: статистика обработки потока JSONL.
type JSONLResult struct {
	PricedCount   int
	RejectedCount int
}

// rejectedLine: запись об отклонённой корзине в выходном потоке.
type rejectedLine struct {
	Line      int              `json:"line"`
	ErrorKind domain.ErrorKind `json:"errorKind"`
	Message   string           `json:"message"`
	Field     string           `json:"offendingField,omitempty"`
}

// PriceJSONLStream: по одной корзине на строку. Для каждой корзины пишет
// OrderView либо запись об ошибке. Пустые строки пропускаются.
func PriceJSONLStream(ctx context.Context, pricer ports.CartPricer, ir io.Reader, ow io.Writer) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(ir)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	enc := json.NewEncoder(ow)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		lineBytes := scanner.Bytes()
		if len(bytes.TrimSpace(lineBytes)) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		order, err := PriceCartFromJSON(ctx, pricer, lineBytes)
		if err != nil {
			res.RejectedCount++
			rej := rejectedLine{Line: lineNo, ErrorKind: domain.KindOf(err), Message: err.Error()}
			var de *domain.Error
			if errors.As(err, &de) {
				rej.Message = de.Message
				rej.Field = de.Field
			}
			if wErr := enc.Encode(rej); wErr != nil {
				return res, fmt.Errorf("write rejected line: %w", wErr)
			}
			continue
		}

		if err := enc.Encode(NewOrderView(order)); err != nil {
			return res, fmt.Errorf("write priced line: %w", err)
		}
		res.PricedCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
