package api

import "google.golang.org/protobuf/types/known/timestamppb"

type Procedure struct {
	Id             int64  `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	UnitPrice      string `json:"unitPrice"`
	Category       string `json:"category"`
}

type LineItem struct {
	Procedure   Procedure `json:"procedure"`
	Quantity    int       `json:"quantity"`
	AmountCents int64     `json:"amountCents"`
	Amount      string    `json:"amount"`
}

type InsuredPatient struct {
	Id      int64  `json:"id"`
	Name    string `json:"name"`
	Insurer string `json:"insurer"`
}

// Invoice is a cart with its derived totals.
type Invoice struct {
	CartId                  string                 `json:"cartId"`
	Patient                 *InsuredPatient        `json:"patient,omitempty"`
	Items                   []LineItem             `json:"items"`
	Units                   int                    `json:"units"`
	CoveragePercent         int64                  `json:"coveragePercent"`
	SubtotalCents           int64                  `json:"subtotalCents"`
	InsuranceDeductionCents int64                  `json:"insuranceDeductionCents"`
	TotalCents              int64                  `json:"totalCents"`
	Subtotal                string                 `json:"subtotal"`
	InsuranceDeduction      string                 `json:"insuranceDeduction"`
	Total                   string                 `json:"total"`
	UpdatedAt               *timestamppb.Timestamp `json:"updatedAt,omitempty"`
}

type ListProceduresRequest struct {
	// Category is "All" (or empty) or one of the procedure categories.
	Category string `json:"category,omitempty"`
	// Query matches name or code, case-insensitively.
	Query string `json:"query,omitempty"`
}

type ListProceduresResponse struct {
	Procedures     []Procedure    `json:"procedures"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}

type CreateCartRequest struct {
	PatientId int64 `json:"patientId,omitempty"`
}

type GetInvoiceRequest struct {
	CartId string `json:"cartId"`
}

type AddProcedureRequest struct {
	CartId      string `json:"cartId"`
	ProcedureId int64  `json:"procedureId"`
}

type ChangeQuantityRequest struct {
	CartId      string `json:"cartId"`
	ProcedureId int64  `json:"procedureId"`
	Delta       int    `json:"delta"`
}

type RemoveItemRequest struct {
	CartId      string `json:"cartId"`
	ProcedureId int64  `json:"procedureId"`
}

// SelectPatientRequest sets the billed patient. PatientId 0 clears it.
type SelectPatientRequest struct {
	CartId    string `json:"cartId"`
	PatientId int64  `json:"patientId"`
}

type DeleteCartRequest struct {
	CartId string `json:"cartId"`
}

type DeleteCartResponse struct{}

// InvoiceResponse is returned by every cart operation.
type InvoiceResponse struct {
	Invoice Invoice `json:"invoice"`
}
