package api

type Patient struct {
	Id              string `json:"id"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	LastVisit       string `json:"lastVisit"`
	NextAppointment string `json:"nextAppointment,omitempty"`
	NextConfirmed   bool   `json:"nextConfirmed"`
	Status          string `json:"status"`
	BalanceCents    int64  `json:"balanceCents"`
	Balance         string `json:"balance"`
}

type ListPatientsRequest struct {
	Search string `json:"search,omitempty"`
	// Status is "all" (or empty) or a patient status.
	Status string `json:"status,omitempty"`
	// Sort is "lastVisit" (default), "name" or "balance".
	Sort string `json:"sort,omitempty"`
	Page int    `json:"page,omitempty"`
}

type ListPatientsResponse struct {
	Patients     []Patient      `json:"patients"`
	Matched      int            `json:"matched"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"totalPages"`
	From         int            `json:"from"`
	To           int            `json:"to"`
	StatusCounts map[string]int `json:"statusCounts"`
}

type ListInsuredPatientsRequest struct{}

type ListInsuredPatientsResponse struct {
	Patients []InsuredPatient `json:"patients"`
}
