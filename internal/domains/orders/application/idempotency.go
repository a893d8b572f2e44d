package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/application/types"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/ports"
)

type normalizedPlacement struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	ReceiverName   string `json:"receiverName"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	UTR            string `json:"utr"`
	ScreenshotName string `json:"screenshotName"`
	ScreenshotHash string `json:"screenshotHash"`
}

// FingerprintPlacement hashes the checkout form, screenshot bytes included,
// excluding the idempotency key itself.
func FingerprintPlacement(input types.PlaceOrderInput) (string, error) {
	details := domain.Details{
		ReceiverName: input.ReceiverName,
		Phone:        input.Phone,
		Address:      input.Address,
		UTR:          input.UTR,
	}.Normalize()
	quantity, err := domain.NormalizeQuantity(input.Quantity)
	if err != nil {
		return "", err
	}
	normalized := normalizedPlacement{
		ProductID:    strings.TrimSpace(input.ProductID),
		Quantity:     quantity,
		ReceiverName: details.ReceiverName,
		Phone:        details.Phone,
		Address:      details.Address,
		UTR:          details.UTR,
	}
	if input.Screenshot != nil {
		sum := sha256.Sum256(input.Screenshot.Data)
		normalized.ScreenshotName = input.Screenshot.Name
		normalized.ScreenshotHash = hex.EncodeToString(sum[:])
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// idempotencyKey scopes a client key to its buyer so two buyers never collide.
func idempotencyKey(uid, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return uid + ":" + key
}

// replay returns the order a previous checkout with the same key produced, or
// nil when there is none or it has since been deleted.
func (s *Service) replay(ctx context.Context, key, fingerprint string) (*domain.Order, error) {
	record, err := s.idempotency.Get(ctx, key)
	if err != nil || record == nil {
		return nil, err
	}
	if record.RequestHash != fingerprint {
		return nil, mapError(ports.ErrIdempotencyConflict)
	}
	order, err := s.repo.GetByID(ctx, record.OrderID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	return order, err
}

// remember binds key to the saved order. A failure only costs replay protection,
// so it is logged rather than returned.
func (s *Service) remember(ctx context.Context, key, fingerprint, orderID string) {
	_, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
		Key:         key,
		RequestHash: fingerprint,
		OrderID:     orderID,
		CreatedAt:   s.clock.Now(),
	})
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to record checkout idempotency key",
			slog.String("order.id", orderID),
			slog.String("error", err.Error()))
	}
}
