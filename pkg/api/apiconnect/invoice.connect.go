package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/dentaldesk/pkg/api"
)

const InvoiceServiceName = "dentaldesk.v1.InvoiceService"

const (
	InvoiceServiceListProceduresProcedure = "/dentaldesk.v1.InvoiceService/ListProcedures"
	InvoiceServiceCreateCartProcedure     = "/dentaldesk.v1.InvoiceService/CreateCart"
	InvoiceServiceGetInvoiceProcedure     = "/dentaldesk.v1.InvoiceService/GetInvoice"
	InvoiceServiceAddProcedureProcedure   = "/dentaldesk.v1.InvoiceService/AddProcedure"
	InvoiceServiceChangeQuantityProcedure = "/dentaldesk.v1.InvoiceService/ChangeQuantity"
	InvoiceServiceRemoveItemProcedure     = "/dentaldesk.v1.InvoiceService/RemoveItem"
	InvoiceServiceSelectPatientProcedure  = "/dentaldesk.v1.InvoiceService/SelectPatient"
	InvoiceServiceDeleteCartProcedure     = "/dentaldesk.v1.InvoiceService/DeleteCart"
)

// InvoiceServiceHandler serves the procedure catalog and invoice carts.
type InvoiceServiceHandler interface {
	ListProcedures(context.Context, *connect.Request[api.ListProceduresRequest]) (*connect.Response[api.ListProceduresResponse], error)
	CreateCart(context.Context, *connect.Request[api.CreateCartRequest]) (*connect.Response[api.InvoiceResponse], error)
	GetInvoice(context.Context, *connect.Request[api.GetInvoiceRequest]) (*connect.Response[api.InvoiceResponse], error)
	AddProcedure(context.Context, *connect.Request[api.AddProcedureRequest]) (*connect.Response[api.InvoiceResponse], error)
	ChangeQuantity(context.Context, *connect.Request[api.ChangeQuantityRequest]) (*connect.Response[api.InvoiceResponse], error)
	RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.InvoiceResponse], error)
	SelectPatient(context.Context, *connect.Request[api.SelectPatientRequest]) (*connect.Response[api.InvoiceResponse], error)
	DeleteCart(context.Context, *connect.Request[api.DeleteCartRequest]) (*connect.Response[api.DeleteCartResponse], error)
}

func NewInvoiceServiceHandler(svc InvoiceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + InvoiceServiceName + "/", route(map[string]http.Handler{
		InvoiceServiceListProceduresProcedure: connect.NewUnaryHandler(InvoiceServiceListProceduresProcedure, svc.ListProcedures, opts...),
		InvoiceServiceCreateCartProcedure:     connect.NewUnaryHandler(InvoiceServiceCreateCartProcedure, svc.CreateCart, opts...),
		InvoiceServiceGetInvoiceProcedure:     connect.NewUnaryHandler(InvoiceServiceGetInvoiceProcedure, svc.GetInvoice, opts...),
		InvoiceServiceAddProcedureProcedure:   connect.NewUnaryHandler(InvoiceServiceAddProcedureProcedure, svc.AddProcedure, opts...),
		InvoiceServiceChangeQuantityProcedure: connect.NewUnaryHandler(InvoiceServiceChangeQuantityProcedure, svc.ChangeQuantity, opts...),
		InvoiceServiceRemoveItemProcedure:     connect.NewUnaryHandler(InvoiceServiceRemoveItemProcedure, svc.RemoveItem, opts...),
		InvoiceServiceSelectPatientProcedure:  connect.NewUnaryHandler(InvoiceServiceSelectPatientProcedure, svc.SelectPatient, opts...),
		InvoiceServiceDeleteCartProcedure:     connect.NewUnaryHandler(InvoiceServiceDeleteCartProcedure, svc.DeleteCart, opts...),
	})
}

type InvoiceServiceClient interface {
	ListProcedures(context.Context, *connect.Request[api.ListProceduresRequest]) (*connect.Response[api.ListProceduresResponse], error)
	CreateCart(context.Context, *connect.Request[api.CreateCartRequest]) (*connect.Response[api.InvoiceResponse], error)
	GetInvoice(context.Context, *connect.Request[api.GetInvoiceRequest]) (*connect.Response[api.InvoiceResponse], error)
	AddProcedure(context.Context, *connect.Request[api.AddProcedureRequest]) (*connect.Response[api.InvoiceResponse], error)
	ChangeQuantity(context.Context, *connect.Request[api.ChangeQuantityRequest]) (*connect.Response[api.InvoiceResponse], error)
	RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.InvoiceResponse], error)
	SelectPatient(context.Context, *connect.Request[api.SelectPatientRequest]) (*connect.Response[api.InvoiceResponse], error)
	DeleteCart(context.Context, *connect.Request[api.DeleteCartRequest]) (*connect.Response[api.DeleteCartResponse], error)
}

func NewInvoiceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) InvoiceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &invoiceServiceClient{
		listProcedures: connect.NewClient[api.ListProceduresRequest, api.ListProceduresResponse](httpClient, baseURL+InvoiceServiceListProceduresProcedure, opts...),
		createCart:     connect.NewClient[api.CreateCartRequest, api.InvoiceResponse](httpClient, baseURL+InvoiceServiceCreateCartProcedure, opts...),
		getInvoice:     connect.NewClient[api.GetInvoiceRequest, api.InvoiceResponse](httpClient, baseURL+InvoiceServiceGetInvoiceProcedure, opts...),
		addProcedure:   connect.NewClient[api.AddProcedureRequest, api.InvoiceResponse](httpClient, baseURL+InvoiceServiceAddProcedureProcedure, opts...),
		changeQuantity: connect.NewClient[api.ChangeQuantityRequest, api.InvoiceResponse](httpClient, baseURL+InvoiceServiceChangeQuantityProcedure, opts...),
		removeItem:     connect.NewClient[api.RemoveItemRequest, api.InvoiceResponse](httpClient, baseURL+InvoiceServiceRemoveItemProcedure, opts...),
		selectPatient:  connect.NewClient[api.SelectPatientRequest, api.InvoiceResponse](httpClient, baseURL+InvoiceServiceSelectPatientProcedure, opts...),
		deleteCart:     connect.NewClient[api.DeleteCartRequest, api.DeleteCartResponse](httpClient, baseURL+InvoiceServiceDeleteCartProcedure, opts...),
	}
}

type invoiceServiceClient struct {
	listProcedures *connect.Client[api.ListProceduresRequest, api.ListProceduresResponse]
	createCart     *connect.Client[api.CreateCartRequest, api.InvoiceResponse]
	getInvoice     *connect.Client[api.GetInvoiceRequest, api.InvoiceResponse]
	addProcedure   *connect.Client[api.AddProcedureRequest, api.InvoiceResponse]
	changeQuantity *connect.Client[api.ChangeQuantityRequest, api.InvoiceResponse]
	removeItem     *connect.Client[api.RemoveItemRequest, api.InvoiceResponse]
	selectPatient  *connect.Client[api.SelectPatientRequest, api.InvoiceResponse]
	deleteCart     *connect.Client[api.DeleteCartRequest, api.DeleteCartResponse]
}

func (c *invoiceServiceClient) ListProcedures(ctx context.Context, req *connect.Request[api.ListProceduresRequest]) (*connect.Response[api.ListProceduresResponse], error) {
	return c.listProcedures.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) CreateCart(ctx context.Context, req *connect.Request[api.CreateCartRequest]) (*connect.Response[api.InvoiceResponse], error) {
	return c.createCart.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) GetInvoice(ctx context.Context, req *connect.Request[api.GetInvoiceRequest]) (*connect.Response[api.InvoiceResponse], error) {
	return c.getInvoice.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) AddProcedure(ctx context.Context, req *connect.Request[api.AddProcedureRequest]) (*connect.Response[api.InvoiceResponse], error) {
	return c.addProcedure.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) ChangeQuantity(ctx context.Context, req *connect.Request[api.ChangeQuantityRequest]) (*connect.Response[api.InvoiceResponse], error) {
	return c.changeQuantity.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.InvoiceResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) SelectPatient(ctx context.Context, req *connect.Request[api.SelectPatientRequest]) (*connect.Response[api.InvoiceResponse], error) {
	return c.selectPatient.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) DeleteCart(ctx context.Context, req *connect.Request[api.DeleteCartRequest]) (*connect.Response[api.DeleteCartResponse], error) {
	return c.deleteCart.CallUnary(ctx, req)
}
