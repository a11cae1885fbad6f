package models

// JSON from front-end
type ReportRequest struct {
	Title           string `json:"title"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	ReporterID      string `json:"reporter_id"`
	ReporterName    string `json:"reporter_name"`
	ReporterContact string `json:"reporter_contact"`
	PhotoURL        string `json:"photo_url"`
}

// AssignRequest is the admin dispatch payload.
type AssignRequest struct {
	OfficerID string `json:"officer_id"`
	ReportID  string `json:"report_id"`
	Note      string `json:"note"`
}

// RejectRequest carries the rejection reason for a report.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// OverrideRequest sets a report status directly, skipping transition checks.
type OverrideRequest struct {
	Status ReportStatus `json:"status"`
}

// OfficerRequest is the payload for registering a field officer.
type OfficerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
