package service

import (
	"errors"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/dentaldesk/internal/invoice"
	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/schedule"
	"github.com/mmynk/dentaldesk/internal/storage"
	"github.com/mmynk/dentaldesk/pkg/api"
)

// storeError maps storage errors to Connect codes.
func storeError(err error, what string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, fmt.Errorf("%s not found", what))
	}
	return connect.NewError(connect.CodeInternal, err)
}

func toAPIProvider(p models.Provider) api.Provider {
	return api.Provider{Id: p.ID, Name: p.Name, Role: p.Role, Initials: p.Initials}
}

func toAPIMarker(m schedule.Marker) api.NowMarker {
	return api.NowMarker{Visible: m.Visible, Offset: m.Offset, At: timestamppb.New(m.At)}
}

func toAPIProcedure(p models.Procedure) api.Procedure {
	return api.Procedure{
		Id:             p.ID,
		Name:           p.Name,
		Code:           p.Code,
		UnitPriceCents: p.UnitPrice.Cents(),
		UnitPrice:      p.UnitPrice.String(),
		Category:       p.Category,
	}
}

func toAPIInsuredPatient(p models.InsuredPatient) api.InsuredPatient {
	return api.InsuredPatient{Id: p.ID, Name: p.Name, Insurer: p.Insurer}
}

func toAPIInvoice(session *models.CartSession, patient *models.InsuredPatient, items []models.LineItem, rate invoice.CoverageRate, totals invoice.Totals) api.Invoice {
	inv := api.Invoice{
		CartId:                  session.ID,
		Items:                   make([]api.LineItem, len(items)),
		Units:                   totals.Units,
		CoveragePercent:         rate.Percent(),
		SubtotalCents:           totals.Subtotal.Cents(),
		InsuranceDeductionCents: totals.InsuranceDeduction.Cents(),
		TotalCents:              totals.Total.Cents(),
		Subtotal:                totals.Subtotal.String(),
		InsuranceDeduction:      totals.InsuranceDeduction.String(),
		Total:                   totals.Total.String(),
		UpdatedAt:               timestamppb.New(time.Unix(session.UpdatedAt, 0)),
	}
	for i, li := range items {
		inv.Items[i] = api.LineItem{
			Procedure:   toAPIProcedure(li.Procedure),
			Quantity:    li.Quantity,
			AmountCents: li.Amount().Cents(),
			Amount:      li.Amount().String(),
		}
	}
	if patient != nil {
		p := toAPIInsuredPatient(*patient)
		inv.Patient = &p
	}
	return inv
}

func toAPIPatient(p models.Patient) api.Patient {
	out := api.Patient{
		Id:            p.ID,
		Name:          p.Name,
		Phone:         p.Phone,
		Email:         p.Email,
		Age:           p.Age,
		Gender:        p.Gender,
		LastVisit:     p.LastVisit.Format(time.DateOnly),
		NextConfirmed: p.NextConfirmed,
		Status:        string(p.Status),
		BalanceCents:  p.Balance.Cents(),
		Balance:       p.Balance.String(),
	}
	if p.HasNextAppointment() {
		out.NextAppointment = p.NextAppointment.Format(time.DateOnly)
	}
	return out
}

func toAPIUser(u *models.StaffUser) *api.User {
	return &api.User{
		Id:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   timestamppb.New(time.Unix(u.CreatedAt, 0)),
	}
}
