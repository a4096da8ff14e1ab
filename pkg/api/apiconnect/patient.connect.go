package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/dentaldesk/pkg/api"
)

const PatientServiceName = "dentaldesk.v1.PatientService"

const (
	PatientServiceListPatientsProcedure        = "/dentaldesk.v1.PatientService/ListPatients"
	PatientServiceListInsuredPatientsProcedure = "/dentaldesk.v1.PatientService/ListInsuredPatients"
)

// PatientServiceHandler serves the patient directory.
type PatientServiceHandler interface {
	ListPatients(context.Context, *connect.Request[api.ListPatientsRequest]) (*connect.Response[api.ListPatientsResponse], error)
	ListInsuredPatients(context.Context, *connect.Request[api.ListInsuredPatientsRequest]) (*connect.Response[api.ListInsuredPatientsResponse], error)
}

func NewPatientServiceHandler(svc PatientServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + PatientServiceName + "/", route(map[string]http.Handler{
		PatientServiceListPatientsProcedure:        connect.NewUnaryHandler(PatientServiceListPatientsProcedure, svc.ListPatients, opts...),
		PatientServiceListInsuredPatientsProcedure: connect.NewUnaryHandler(PatientServiceListInsuredPatientsProcedure, svc.ListInsuredPatients, opts...),
	})
}

type PatientServiceClient interface {
	ListPatients(context.Context, *connect.Request[api.ListPatientsRequest]) (*connect.Response[api.ListPatientsResponse], error)
	ListInsuredPatients(context.Context, *connect.Request[api.ListInsuredPatientsRequest]) (*connect.Response[api.ListInsuredPatientsResponse], error)
}

func NewPatientServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PatientServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &patientServiceClient{
		listPatients:        connect.NewClient[api.ListPatientsRequest, api.ListPatientsResponse](httpClient, baseURL+PatientServiceListPatientsProcedure, opts...),
		listInsuredPatients: connect.NewClient[api.ListInsuredPatientsRequest, api.ListInsuredPatientsResponse](httpClient, baseURL+PatientServiceListInsuredPatientsProcedure, opts...),
	}
}

type patientServiceClient struct {
	listPatients        *connect.Client[api.ListPatientsRequest, api.ListPatientsResponse]
	listInsuredPatients *connect.Client[api.ListInsuredPatientsRequest, api.ListInsuredPatientsResponse]
}

func (c *patientServiceClient) ListPatients(ctx context.Context, req *connect.Request[api.ListPatientsRequest]) (*connect.Response[api.ListPatientsResponse], error) {
	return c.listPatients.CallUnary(ctx, req)
}

func (c *patientServiceClient) ListInsuredPatients(ctx context.Context, req *connect.Request[api.ListInsuredPatientsRequest]) (*connect.Response[api.ListInsuredPatientsResponse], error) {
	return c.listInsuredPatients.CallUnary(ctx, req)
}
