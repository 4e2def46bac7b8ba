// Package openapi turns the request body of an OpenAPI operation into a wizard
// schema. Loader and Parser are contracts; their kin-openapi backed
// implementations live under internal/openapi and are constructed through the
// root formwizard package.
package openapi
