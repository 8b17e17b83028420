package validator

import (
	"strings"
	"unicode"

	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the domain validation tags on v.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			logger.Fatal("failed to register custom validation tag", "tag", tag, "error", err)
		}
	}

	mustRegister("is-plan-category", validatePlanCategory)
	mustRegister("is-decision-status", validateDecisionStatus)
	mustRegister("is-mobile", validateMobile)
	mustRegister("not-blank", validateNotBlank)
}

func validatePlanCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty values
	}
	return models.PlanCategory(strings.ToUpper(value)).Valid()
}

// validateDecisionStatus accepts only the statuses an admin may set.
func validateDecisionStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ApplicationStatus(value).IsDecision()
}

// validateMobile allows digits with an optional leading '+' and spaces or dashes.
func validateMobile(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	digits := 0
	for i, r := range value {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
