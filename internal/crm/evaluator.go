package crm

import (
	"github.com/shopspring/decimal"

	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

// CustomerField names a customer attribute a grading condition may read.
// The set is closed: rule documents referencing anything else are rejected
// at load time instead of falling back to reflective lookup.
type CustomerField string

const (
	FieldTotalOrders CustomerField = "total_orders"
	FieldTotalAmount CustomerField = "total_amount"
)

var fieldAccessors = map[CustomerField]func(*models.Customer) decimal.Decimal{
	FieldTotalOrders: func(c *models.Customer) decimal.Decimal {
		return decimal.NewFromInt(int64(c.TotalOrders))
	},
	FieldTotalAmount: func(c *models.Customer) decimal.Decimal {
		return c.TotalAmount
	},
}

// ParseCustomerField resolves a rule document field name to a known accessor.
func ParseCustomerField(value string) (CustomerField, bool) {
	field := CustomerField(value)
	_, ok := fieldAccessors[field]
	return field, ok
}

// customerValue reads one attribute off a customer snapshot. Unknown fields
// read as zero; LoadRules rejects them before they reach this point, so the
// zero branch only guards hand-built rule sets.
func customerValue(customer *models.Customer, field CustomerField) decimal.Decimal {
	accessor, ok := fieldAccessors[field]
	if !ok {
		return decimal.Zero
	}
	return accessor(customer)
}

// evaluateCondition compares a customer value against a threshold. Unknown
// operators evaluate to false rather than erroring.
func evaluateCondition(value decimal.Decimal, operator enums.RuleOperator, threshold decimal.Decimal) bool {
	switch operator {
	case enums.RuleOperatorGT:
		return value.GreaterThan(threshold)
	case enums.RuleOperatorGE:
		return value.GreaterThanOrEqual(threshold)
	case enums.RuleOperatorLT:
		return value.LessThan(threshold)
	case enums.RuleOperatorLE:
		return value.LessThanOrEqual(threshold)
	case enums.RuleOperatorEQ:
		return value.Equal(threshold)
	}
	return false
}
