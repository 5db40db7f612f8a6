package middleware

import (
	"net/http"

	"github.com/orderflowhq/orderflow-backend/api/responses"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
	"github.com/orderflowhq/orderflow-backend/pkg/logger"
)

var roleRank = map[enums.UserRole]int{
	enums.UserRoleCustomer:       0,
	enums.UserRoleAccountManager: 1,
	enums.UserRoleAdmin:          2,
	enums.UserRoleSuperAdmin:     3,
}

// RequireMinRole blocks callers whose role ranks below the given role.
// Higher roles always pass, so a super admin can reach every surface.
func RequireMinRole(min enums.UserRole, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			rank, known := roleRank[role]
			if !known || rank < roleRank[min] {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
