// Package redis keeps invoice cart sessions in Redis. It is the cart backend for
// deployments that run more than one dashboard server behind a load balancer.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/storage"
)

// DefaultTTL is how long an untouched cart session survives.
const DefaultTTL = 12 * time.Hour

var _ storage.CartStore = (*CartStore)(nil)

// CartStore stores each cart session as one JSON value with a sliding TTL.
type CartStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewCartStore wraps an existing client. Keys are "<prefix>:<cart id>".
func NewCartStore(rdb *redis.Client, ttl time.Duration, prefix string) *CartStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "cart"
	}
	return &CartStore{rdb: rdb, ttl: ttl, prefix: prefix}
}

type cartRecord struct {
	ID        string       `json:"id"`
	PatientID int64        `json:"patient_id,omitempty"`
	Items     []itemRecord `json:"items"`
	CreatedAt int64        `json:"created_at"`
	UpdatedAt int64        `json:"updated_at"`
}

type itemRecord struct {
	ProcedureID int64  `json:"procedure_id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	UnitCents   int64  `json:"unit_cents"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
}

func (s *CartStore) key(id string) string {
	return s.prefix + ":" + id
}

func encode(cart *models.CartSession) ([]byte, error) {
	rec := cartRecord{
		ID:        cart.ID,
		PatientID: cart.PatientID,
		Items:     make([]itemRecord, len(cart.Items)),
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}
	for i, li := range cart.Items {
		rec.Items[i] = itemRecord{
			ProcedureID: li.Procedure.ID,
			Name:        li.Procedure.Name,
			Code:        li.Procedure.Code,
			UnitCents:   li.Procedure.UnitPrice.Cents(),
			Category:    li.Procedure.Category,
			Quantity:    li.Quantity,
		}
	}
	return json.Marshal(rec)
}

func decode(data []byte) (*models.CartSession, error) {
	var rec cartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	cart := &models.CartSession{
		ID:        rec.ID,
		PatientID: rec.PatientID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	for _, it := range rec.Items {
		cart.Items = append(cart.Items, models.LineItem{
			Procedure: models.Procedure{
				ID:        it.ProcedureID,
				Name:      it.Name,
				Code:      it.Code,
				UnitPrice: models.Money(it.UnitCents),
				Category:  it.Category,
			},
			Quantity: it.Quantity,
		})
	}
	return cart, nil
}

// CreateCart stores a new session. Fails if the ID is already taken.
func (s *CartStore) CreateCart(ctx context.Context, cart *models.CartSession) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if cart.CreatedAt == 0 {
		cart.CreatedAt = time.Now().Unix()
	}
	if cart.UpdatedAt == 0 {
		cart.UpdatedAt = cart.CreatedAt
	}

	data, err := encode(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, s.key(cart.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	if !ok {
		return fmt.Errorf("cart %s already exists", cart.ID)
	}
	return nil
}

// GetCart loads a session and refreshes its TTL.
func (s *CartStore) GetCart(ctx context.Context, cartID string) (*models.CartSession, error) {
	data, err := s.rdb.GetEx(ctx, s.key(cartID), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("cart %s: %w", cartID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	cart, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return cart, nil
}

// SaveCart overwrites an existing session. Expired or unknown sessions are not recreated.
func (s *CartStore) SaveCart(ctx context.Context, cart *models.CartSession) error {
	cart.UpdatedAt = time.Now().Unix()
	data, err := encode(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	ok, err := s.rdb.SetXX(ctx, s.key(cart.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if !ok {
		return fmt.Errorf("cart %s: %w", cart.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteCart removes a session.
func (s *CartStore) DeleteCart(ctx context.Context, cartID string) error {
	n, err := s.rdb.Del(ctx, s.key(cartID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("cart %s: %w", cartID, storage.ErrNotFound)
	}
	return nil
}
