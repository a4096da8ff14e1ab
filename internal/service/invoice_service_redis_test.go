package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mmynk/dentaldesk/internal/catalog"
	"github.com/mmynk/dentaldesk/internal/invoice"
	redisstore "github.com/mmynk/dentaldesk/internal/storage/redis"
	"github.com/mmynk/dentaldesk/internal/storage/sqlite"
	"github.com/mmynk/dentaldesk/pkg/api"
	"github.com/mmynk/dentaldesk/pkg/api/apiconnect"
)

// TestInvoice_RedisCarts runs a cart through the invoice service with sessions kept in
// Redis and the catalog in SQLite, as in a multi-instance deployment.
func TestInvoice_RedisCarts(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()
	if err := store.Seed(context.Background(), catalog.Default()); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	carts := redisstore.NewCartStore(rdb, time.Hour, "")
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewInvoiceServiceHandler(NewInvoiceService(store, carts, invoice.DefaultCoverageRate, nil)))
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiconnect.NewInvoiceServiceClient(http.DefaultClient, server.URL)
	ctx := context.Background()

	created, err := client.CreateCart(ctx, connect.NewRequest(&api.CreateCartRequest{PatientId: 2}))
	if err != nil {
		t.Fatalf("CreateCart failed: %v", err)
	}
	cartID := created.Msg.Invoice.CartId
	if !mr.Exists("cart:" + cartID) {
		t.Fatalf("expected cart %s in redis", cartID)
	}

	for _, id := range []int64{crownID, fluorideID, crownID} {
		if _, err := client.AddProcedure(ctx, connect.NewRequest(&api.AddProcedureRequest{CartId: cartID, ProcedureId: id})); err != nil {
			t.Fatalf("AddProcedure(%d) failed: %v", id, err)
		}
	}
	resp, err := client.ChangeQuantity(ctx, connect.NewRequest(&api.ChangeQuantityRequest{CartId: cartID, ProcedureId: fluorideID, Delta: -1}))
	if err != nil {
		t.Fatalf("ChangeQuantity failed: %v", err)
	}
	checkTotals(t, resp.Msg.Invoice, 240000, 36000, 204000)

	got, err := client.GetInvoice(ctx, connect.NewRequest(&api.GetInvoiceRequest{CartId: cartID}))
	if err != nil {
		t.Fatalf("GetInvoice failed: %v", err)
	}
	inv := got.Msg.Invoice
	if len(inv.Items) != 1 || inv.Items[0].Quantity != 2 {
		t.Errorf("expected crown x2, got %+v", inv.Items)
	}
	if inv.Patient == nil || inv.Patient.Name != "Emma Thompson" {
		t.Errorf("unexpected patient: %+v", inv.Patient)
	}

	// An expired session behaves like an unknown cart.
	mr.FastForward(time.Hour)
	_, err = client.AddProcedure(ctx, connect.NewRequest(&api.AddProcedureRequest{CartId: cartID, ProcedureId: crownID}))
	assertCode(t, err, connect.CodeNotFound)
}
