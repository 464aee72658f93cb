package http

import (
	"ordersd/internal/auth/scopes"
	"ordersd/internal/domain"
	"ordersd/internal/problem"

	"github.com/gin-gonic/gin"
)

const principalContextKey = "principal"

// requireScopes runs the authentication and authorization stages for one
// route. Either failure short-circuits to the problem writer; success stores
// the principal for the handler.
func (s *Server) requireScopes(required ...string) gin.HandlerFunc {
	requirement := scopes.Requirement{Required: required}
	return func(c *gin.Context) {
		if s.cfg.AuthMode == "none" {
			c.Next()
			return
		}
		principal, err := s.authenticator.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			problem.Write(c, err)
			return
		}
		decision := s.authorizer.Authorize(principal, requirement)
		if !decision.Allowed {
			problem.Write(c, domain.Forbidden(decision.Reason))
			return
		}
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func getPrincipal(c *gin.Context) (domain.Principal, bool) {
	raw, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := raw.(domain.Principal)
	return principal, ok
}
