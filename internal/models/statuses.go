package models

type PlanCategory string
type ApplicationStatus string

const (
	PlanCategoryInvestment PlanCategory = "INVESTMENT"
	PlanCategoryInsurance  PlanCategory = "INSURANCE"
	PlanCategoryFD         PlanCategory = "FD"
	PlanCategoryLoan       PlanCategory = "LOAN"

	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

func (c PlanCategory) Valid() bool {
	switch c {
	case PlanCategoryInvestment, PlanCategoryInsurance, PlanCategoryFD, PlanCategoryLoan:
		return true
	}
	return false
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a status an admin may set.
func (s ApplicationStatus) IsDecision() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}
