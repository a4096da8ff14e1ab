package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/dentaldesk/pkg/api"
)

func TestListPatients(t *testing.T) {
	clients, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	resp, err := clients.patient.ListPatients(ctx, connect.NewRequest(&api.ListPatientsRequest{}))
	if err != nil {
		t.Fatalf("ListPatients failed: %v", err)
	}
	page := resp.Msg
	if len(page.Patients) != 8 || page.TotalPages != 2 || page.Matched != 10 {
		t.Errorf("unexpected first page: %d rows, %d pages, %d matched", len(page.Patients), page.TotalPages, page.Matched)
	}
	if page.Patients[0].Id != "PT-1008" {
		t.Errorf("expected most recent visit first, got %s", page.Patients[0].Id)
	}
	if page.StatusCounts["all"] != 10 || page.StatusCounts["Active"] != 5 {
		t.Errorf("unexpected status counts: %v", page.StatusCounts)
	}

	resp, err = clients.patient.ListPatients(ctx, connect.NewRequest(&api.ListPatientsRequest{Page: 2}))
	if err != nil {
		t.Fatalf("ListPatients failed: %v", err)
	}
	if len(resp.Msg.Patients) != 2 || resp.Msg.From != 9 || resp.Msg.To != 10 {
		t.Errorf("unexpected second page: %+v", resp.Msg)
	}

	resp, err = clients.patient.ListPatients(ctx, connect.NewRequest(&api.ListPatientsRequest{Search: "lee", Sort: "name"}))
	if err != nil {
		t.Fatalf("ListPatients failed: %v", err)
	}
	if len(resp.Msg.Patients) != 1 || resp.Msg.Patients[0].Id != "PT-1010" {
		t.Errorf("unexpected search result: %+v", resp.Msg.Patients)
	}
	if resp.Msg.Patients[0].Balance == "" || resp.Msg.Patients[0].LastVisit == "" {
		t.Errorf("expected formatted balance and visit date, got %+v", resp.Msg.Patients[0])
	}
}

func TestListInsuredPatients(t *testing.T) {
	clients, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := clients.patient.ListInsuredPatients(context.Background(), connect.NewRequest(&api.ListInsuredPatientsRequest{}))
	if err != nil {
		t.Fatalf("ListInsuredPatients failed: %v", err)
	}
	if len(resp.Msg.Patients) != 3 || resp.Msg.Patients[0].Insurer != "BlueCross PPO" {
		t.Errorf("unexpected insured patients: %+v", resp.Msg.Patients)
	}
}
