package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/dentaldesk/internal/directory"
	"github.com/mmynk/dentaldesk/internal/storage"
	"github.com/mmynk/dentaldesk/pkg/api"
	"github.com/mmynk/dentaldesk/pkg/api/apiconnect"
)

var _ apiconnect.PatientServiceHandler = (*PatientService)(nil)

// PatientService implements the Connect PatientService
type PatientService struct {
	store storage.CatalogStore
}

func NewPatientService(store storage.CatalogStore) *PatientService {
	return &PatientService{store: store}
}

// ListPatients returns one page of the patient directory.
func (s *PatientService) ListPatients(ctx context.Context, req *connect.Request[api.ListPatientsRequest]) (*connect.Response[api.ListPatientsResponse], error) {
	patients, err := s.store.ListPatients(ctx)
	if err != nil {
		slog.Error("ListPatients failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	page := directory.Search(patients, directory.Query{
		Search: req.Msg.Search,
		Status: req.Msg.Status,
		Sort:   directory.ParseSortKey(req.Msg.Sort),
		Page:   req.Msg.Page,
	})

	resp := &api.ListPatientsResponse{
		Patients:     make([]api.Patient, len(page.Patients)),
		Matched:      page.Matched,
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		From:         page.From,
		To:           page.To,
		StatusCounts: map[string]int{directory.StatusAll: len(patients)},
	}
	for i, p := range page.Patients {
		resp.Patients[i] = toAPIPatient(p)
	}
	for status, n := range directory.StatusCounts(patients) {
		resp.StatusCounts[string(status)] = n
	}
	return connect.NewResponse(resp), nil
}

// ListInsuredPatients returns the patients an invoice can be billed to.
func (s *PatientService) ListInsuredPatients(ctx context.Context, req *connect.Request[api.ListInsuredPatientsRequest]) (*connect.Response[api.ListInsuredPatientsResponse], error) {
	patients, err := s.store.ListInsuredPatients(ctx)
	if err != nil {
		slog.Error("ListInsuredPatients failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.ListInsuredPatientsResponse{Patients: make([]api.InsuredPatient, len(patients))}
	for i, p := range patients {
		resp.Patients[i] = toAPIInsuredPatient(p)
	}
	return connect.NewResponse(resp), nil
}
