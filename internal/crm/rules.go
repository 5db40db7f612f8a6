package crm

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
)

// DefaultNoOrderDays is used when the rule document omits reminder_rules.no_order_days.
const DefaultNoOrderDays = 90

// Condition is one compiled comparison inside a grading rule.
type Condition struct {
	Field     CustomerField
	Operator  enums.RuleOperator
	Threshold decimal.Decimal
}

// GradeRule is one compiled entry of the ordered grading rule list.
type GradeRule struct {
	Grade      enums.CustomerGrade
	MatchType  enums.RuleMatchType
	Conditions []Condition
}

// RuleSet is a validated, compiled rule document. Construction goes through
// LoadRules so every field, operator and match type is known before any
// customer is evaluated against it.
type RuleSet struct {
	GradeRules  []GradeRule
	NoOrderDays int
}

type ruleDocument struct {
	GradeRules    []ruleEntry   `mapstructure:"grade_rules"`
	ReminderRules reminderEntry `mapstructure:"reminder_rules"`
}

type ruleEntry struct {
	Grade      string           `mapstructure:"grade"`
	MatchType  string           `mapstructure:"match_type"`
	Conditions []conditionEntry `mapstructure:"conditions"`
}

type conditionEntry struct {
	Field    string  `mapstructure:"field"`
	Operator string  `mapstructure:"operator"`
	Value    float64 `mapstructure:"value"`
}

type reminderEntry struct {
	NoOrderDays int `mapstructure:"no_order_days"`
}

// LoadRules reads and compiles the grading rule document at path. The
// document is re-read on every call so rule edits take effect without a
// restart. A document that references an unknown grade, field, operator or
// match type is rejected outright instead of silently mis-evaluating later.
func LoadRules(path string) (*RuleSet, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read rule document")
	}

	var doc ruleDocument
	if err := v.Unmarshal(&doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode rule document")
	}

	return compileRules(doc)
}

func compileRules(doc ruleDocument) (*RuleSet, error) {
	set := &RuleSet{
		GradeRules:  make([]GradeRule, 0, len(doc.GradeRules)),
		NoOrderDays: doc.ReminderRules.NoOrderDays,
	}
	if set.NoOrderDays == 0 {
		set.NoOrderDays = DefaultNoOrderDays
	}
	if set.NoOrderDays < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reminder_rules.no_order_days must not be negative")
	}

	for i, entry := range doc.GradeRules {
		rule, err := compileRule(entry)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("grade_rules[%d]", i))
		}
		set.GradeRules = append(set.GradeRules, rule)
	}

	return set, nil
}

func compileRule(entry ruleEntry) (GradeRule, error) {
	grade, err := enums.ParseCustomerGrade(entry.Grade)
	if err != nil {
		return GradeRule{}, err
	}

	matchType := enums.RuleMatchAny
	if entry.MatchType != "" {
		matchType, err = enums.ParseRuleMatchType(entry.MatchType)
		if err != nil {
			return GradeRule{}, err
		}
	}

	rule := GradeRule{Grade: grade, MatchType: matchType}
	if matchType == enums.RuleMatchDefault {
		return rule, nil
	}

	if len(entry.Conditions) == 0 {
		return GradeRule{}, fmt.Errorf("rule for grade %q has no conditions", entry.Grade)
	}

	rule.Conditions = make([]Condition, 0, len(entry.Conditions))
	for j, cond := range entry.Conditions {
		field, ok := ParseCustomerField(cond.Field)
		if !ok {
			return GradeRule{}, fmt.Errorf("conditions[%d]: unknown field %q", j, cond.Field)
		}
		operator, err := enums.ParseRuleOperator(cond.Operator)
		if err != nil {
			return GradeRule{}, fmt.Errorf("conditions[%d]: %w", j, err)
		}
		rule.Conditions = append(rule.Conditions, Condition{
			Field:     field,
			Operator:  operator,
			Threshold: decimal.NewFromFloat(cond.Value),
		})
	}

	return rule, nil
}
