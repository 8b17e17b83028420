package dto

type StatsResponse struct {
	TotalPlans           int64            `json:"total_plans"`
	TotalApplications    int64            `json:"total_applications"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	PendingApplications  int64            `json:"pending_applications"`
	ContactSubmissions   int64            `json:"contact_submissions"`
}
