package controllers

import (
	"net/http"
	"strings"

	"github.com/orderflowhq/orderflow-backend/api/middleware"
	"github.com/orderflowhq/orderflow-backend/api/responses"
	"github.com/orderflowhq/orderflow-backend/api/validators"
	customersvc "github.com/orderflowhq/orderflow-backend/internal/customers"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
	"github.com/orderflowhq/orderflow-backend/pkg/logger"
)

// ListCustomers pages through the CRM book with optional grade and industry
// filters.
func ListCustomers(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filters customersvc.Filters
		if raw := strings.TrimSpace(r.URL.Query().Get("grade")); raw != "" {
			grade, err := enums.ParseCustomerGrade(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid grade"))
				return
			}
			filters.Grade = &grade
		}
		if industry := strings.TrimSpace(r.URL.Query().Get("industry")); industry != "" {
			filters.Industry = &industry
		}
		filters.SortBy = strings.TrimSpace(r.URL.Query().Get("sort_by"))

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCustomerViews(list))
	}
}

// GetCustomer returns one CRM record.
func GetCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Get(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCustomerView(customer))
	}
}

type createCustomerRequest struct {
	CompanyName   string  `json:"company_name" validate:"required"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Address       *string `json:"address,omitempty"`
	Industry      *string `json:"industry,omitempty"`
	Source        *string `json:"source,omitempty"`
}

// CreateCustomer adds a CRM record.
func CreateCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), customersvc.CreateInput{
			CompanyName:   payload.CompanyName,
			ContactPerson: payload.ContactPerson,
			Phone:         payload.Phone,
			Email:         payload.Email,
			Address:       payload.Address,
			Industry:      payload.Industry,
			Source:        payload.Source,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCustomerView(customer))
	}
}

type updateCustomerRequest struct {
	CompanyName   *string `json:"company_name,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Address       *string `json:"address,omitempty"`
	Industry      *string `json:"industry,omitempty"`
	Source        *string `json:"source,omitempty"`
}

// UpdateCustomer applies a partial CRM edit.
func UpdateCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Update(r.Context(), customerID, customersvc.UpdateInput{
			CompanyName:   payload.CompanyName,
			ContactPerson: payload.ContactPerson,
			Phone:         payload.Phone,
			Email:         payload.Email,
			Address:       payload.Address,
			Industry:      payload.Industry,
			Source:        payload.Source,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCustomerView(customer))
	}
}

// DeleteCustomer removes a CRM record and its interaction log.
func DeleteCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createInteractionRequest struct {
	Type       string  `json:"interaction_type" validate:"required"`
	Content    string  `json:"content" validate:"required"`
	NextAction *string `json:"next_action,omitempty"`
}

// CreateInteraction appends a touchpoint to a customer's log. The recording
// staff member is taken from the authenticated context.
func CreateInteraction(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createInteractionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		interaction, err := svc.AddInteraction(r.Context(), customerID, customersvc.CreateInteractionInput{
			Type:       enums.InteractionType(strings.TrimSpace(payload.Type)),
			Content:    payload.Content,
			NextAction: payload.NextAction,
			RecordedBy: middleware.UsernameFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newInteractionView(interaction))
	}
}

// ListInteractions returns a customer's touchpoint log, newest first.
func ListInteractions(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListInteractions(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newInteractionViews(list))
	}
}

// CompleteInteraction marks a logged follow-up action as done.
func CompleteInteraction(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		interactionID, err := parseUUIDParam(r, "interactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		interaction, err := svc.CompleteInteraction(r.Context(), interactionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newInteractionView(interaction))
	}
}
