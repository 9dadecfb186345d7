// Package openapi describes the payload a compiled form submits as an OpenAPI
// 3 document. The schema mirrors the control tree: text and radio fields are
// strings, checkbox groups and selects are string arrays, and length rules map
// onto minLength/maxLength for scalars or minItems/maxItems for arrays.
package openapi
