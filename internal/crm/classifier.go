package crm

import (
	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

// ClassifyGrade walks the rule list in order and returns the grade of the
// first matching rule. A default rule matches unconditionally wherever it
// sits, so callers should place it last. When nothing matches the grade
// falls back to C.
func ClassifyGrade(customer *models.Customer, rules *RuleSet) enums.CustomerGrade {
	for _, rule := range rules.GradeRules {
		if ruleMatches(customer, rule) {
			return rule.Grade
		}
	}
	return enums.CustomerGradeC
}

func ruleMatches(customer *models.Customer, rule GradeRule) bool {
	switch rule.MatchType {
	case enums.RuleMatchDefault:
		return true
	case enums.RuleMatchAny:
		for _, cond := range rule.Conditions {
			if evaluateCondition(customerValue(customer, cond.Field), cond.Operator, cond.Threshold) {
				return true
			}
		}
		return false
	case enums.RuleMatchAll:
		if len(rule.Conditions) == 0 {
			return false
		}
		for _, cond := range rule.Conditions {
			if !evaluateCondition(customerValue(customer, cond.Field), cond.Operator, cond.Threshold) {
				return false
			}
		}
		return true
	}
	return false
}
