package utils

import "context"

type contextKey string

const tenantContextKey contextKey = "tenant"

// DefaultTenant is used when a request carries no tenant claim.
const DefaultTenant = "default"

// SetTenantToContext stores the tenant identifier on the context.
func SetTenantToContext(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, tenantContextKey, tenant)
}

// GetTenantFromContext returns the tenant identifier from the context,
// falling back to DefaultTenant when none was set.
func GetTenantFromContext(ctx context.Context) string {
	if tenant, ok := ctx.Value(tenantContextKey).(string); ok && tenant != "" {
		return tenant
	}

	return DefaultTenant
}
