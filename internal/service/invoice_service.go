package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/dentaldesk/internal/catalog"
	"github.com/mmynk/dentaldesk/internal/invoice"
	"github.com/mmynk/dentaldesk/internal/metrics"
	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/storage"
	"github.com/mmynk/dentaldesk/pkg/api"
	"github.com/mmynk/dentaldesk/pkg/api/apiconnect"
)

var _ apiconnect.InvoiceServiceHandler = (*InvoiceService)(nil)

var errMissingCartID = errors.New("cart_id is required")

// InvoiceService implements the Connect InvoiceService. Each cart session belongs to one
// dashboard view; every mutation loads the session, applies the reducer and saves it back.
type InvoiceService struct {
	catalog storage.CatalogStore
	carts   storage.CartStore
	rate    invoice.CoverageRate
	metrics *metrics.Metrics

	// mu serializes read-modify-write cycles on carts within this process.
	mu sync.Mutex
}

// NewInvoiceService creates an InvoiceService billing at the given coverage rate.
func NewInvoiceService(catalogStore storage.CatalogStore, carts storage.CartStore, rate invoice.CoverageRate, m *metrics.Metrics) *InvoiceService {
	return &InvoiceService{catalog: catalogStore, carts: carts, rate: rate, metrics: m}
}

// ListProcedures returns the catalog narrowed by category and search text, plus the
// per-category counts of the whole catalog.
func (s *InvoiceService) ListProcedures(ctx context.Context, req *connect.Request[api.ListProceduresRequest]) (*connect.Response[api.ListProceduresResponse], error) {
	if req.Msg.Category != "" && !slices.Contains(catalog.Categories, req.Msg.Category) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("unknown category "+req.Msg.Category))
	}

	procs, err := s.catalog.ListProcedures(ctx)
	if err != nil {
		slog.Error("ListProcedures failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	matched := catalog.FilterProcedures(procs, catalog.ProcedureFilter{
		Category: req.Msg.Category,
		Query:    req.Msg.Query,
	})
	resp := &api.ListProceduresResponse{
		Procedures:     make([]api.Procedure, len(matched)),
		CategoryCounts: catalog.CategoryCounts(procs),
	}
	for i, p := range matched {
		resp.Procedures[i] = toAPIProcedure(p)
	}
	return connect.NewResponse(resp), nil
}

// CreateCart opens a new, empty cart session.
func (s *InvoiceService) CreateCart(ctx context.Context, req *connect.Request[api.CreateCartRequest]) (*connect.Response[api.InvoiceResponse], error) {
	session := &models.CartSession{PatientID: req.Msg.PatientId}
	patient, err := s.lookupPatient(ctx, session.PatientID)
	if err != nil {
		return nil, err
	}

	if err := s.carts.CreateCart(ctx, session); err != nil {
		slog.Error("CreateCart failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.CartMutation("create")
	slog.Info("Cart created", "cart_id", session.ID, "patient_id", session.PatientID)

	return s.respond(session, patient, invoice.NewCart(nil)), nil
}

// GetInvoice returns the cart with freshly computed totals.
func (s *InvoiceService) GetInvoice(ctx context.Context, req *connect.Request[api.GetInvoiceRequest]) (*connect.Response[api.InvoiceResponse], error) {
	if req.Msg.CartId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingCartID)
	}
	session, err := s.carts.GetCart(ctx, req.Msg.CartId)
	if err != nil {
		return nil, storeError(err, "cart")
	}
	patient, err := s.lookupPatient(ctx, session.PatientID)
	if err != nil {
		return nil, err
	}
	return s.respond(session, patient, invoice.NewCart(session.Items)), nil
}

// AddProcedure adds one unit of a catalog procedure.
func (s *InvoiceService) AddProcedure(ctx context.Context, req *connect.Request[api.AddProcedureRequest]) (*connect.Response[api.InvoiceResponse], error) {
	if req.Msg.CartId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingCartID)
	}
	proc, err := s.catalog.GetProcedure(ctx, req.Msg.ProcedureId)
	if err != nil {
		return nil, storeError(err, "procedure")
	}
	return s.mutate(ctx, req.Msg.CartId, "add", func(_ *models.CartSession, cart *invoice.Cart) error {
		cart.Add(*proc)
		return nil
	})
}

// ChangeQuantity adjusts a line item by delta. Items reaching zero are removed; unknown
// items are left alone.
func (s *InvoiceService) ChangeQuantity(ctx context.Context, req *connect.Request[api.ChangeQuantityRequest]) (*connect.Response[api.InvoiceResponse], error) {
	return s.mutate(ctx, req.Msg.CartId, "change", func(_ *models.CartSession, cart *invoice.Cart) error {
		cart.ChangeQuantity(req.Msg.ProcedureId, req.Msg.Delta)
		return nil
	})
}

// RemoveItem deletes a line item regardless of its quantity.
func (s *InvoiceService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.InvoiceResponse], error) {
	return s.mutate(ctx, req.Msg.CartId, "remove", func(_ *models.CartSession, cart *invoice.Cart) error {
		cart.Remove(req.Msg.ProcedureId)
		return nil
	})
}

// SelectPatient sets the insured patient the invoice is billed to.
func (s *InvoiceService) SelectPatient(ctx context.Context, req *connect.Request[api.SelectPatientRequest]) (*connect.Response[api.InvoiceResponse], error) {
	if _, err := s.lookupPatient(ctx, req.Msg.PatientId); err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.Msg.CartId, "select_patient", func(session *models.CartSession, _ *invoice.Cart) error {
		session.PatientID = req.Msg.PatientId
		return nil
	})
}

// DeleteCart discards a cart session.
func (s *InvoiceService) DeleteCart(ctx context.Context, req *connect.Request[api.DeleteCartRequest]) (*connect.Response[api.DeleteCartResponse], error) {
	if req.Msg.CartId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingCartID)
	}
	if err := s.carts.DeleteCart(ctx, req.Msg.CartId); err != nil {
		return nil, storeError(err, "cart")
	}
	s.metrics.CartMutation("delete")
	slog.Info("Cart deleted", "cart_id", req.Msg.CartId)
	return connect.NewResponse(&api.DeleteCartResponse{}), nil
}

func (s *InvoiceService) mutate(ctx context.Context, cartID, op string, apply func(*models.CartSession, *invoice.Cart) error) (*connect.Response[api.InvoiceResponse], error) {
	if cartID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingCartID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, storeError(err, "cart")
	}

	cart := invoice.NewCart(session.Items)
	if err := apply(session, cart); err != nil {
		return nil, err
	}
	session.Items = cart.Items()

	if err := s.carts.SaveCart(ctx, session); err != nil {
		slog.Error("SaveCart failed", "cart_id", cartID, "op", op, "error", err)
		return nil, storeError(err, "cart")
	}
	s.metrics.CartMutation(op)
	s.metrics.ObserveInvoiceTotal(cart.Totals(s.rate).Total)

	patient, err := s.lookupPatient(ctx, session.PatientID)
	if err != nil {
		return nil, err
	}
	return s.respond(session, patient, cart), nil
}

// lookupPatient resolves an insured patient; zero means none.
func (s *InvoiceService) lookupPatient(ctx context.Context, id int64) (*models.InsuredPatient, error) {
	if id == 0 {
		return nil, nil
	}
	p, err := s.catalog.GetInsuredPatient(ctx, id)
	if err != nil {
		return nil, storeError(err, "patient")
	}
	return p, nil
}

func (s *InvoiceService) respond(session *models.CartSession, patient *models.InsuredPatient, cart *invoice.Cart) *connect.Response[api.InvoiceResponse] {
	totals := cart.Totals(s.rate)
	return connect.NewResponse(&api.InvoiceResponse{
		Invoice: toAPIInvoice(session, patient, cart.Items(), s.rate, totals),
	})
}
