// Package scope guards tenant and entity identifiers before any query
// is issued. An unscoped query either errors or leaks cross-tenant rows
// depending on the backend's row-level-security setup, so a missing id
// must fail immediately and loudly.
package scope

import (
	"fmt"
	"strings"

	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

// CompanyScope validates the tenant identifier and returns it unchanged.
func CompanyScope(companyID string) (string, error) {
	if strings.TrimSpace(companyID) == "" {
		return "", repoerr.Invalid("A company identifier is required for this operation.")
	}
	return companyID, nil
}

// Identifier validates any other required identifier. The label names the
// field in the failure message.
func Identifier(value, label string) (string, error) {
	if label == "" {
		label = "id"
	}
	if strings.TrimSpace(value) == "" {
		return "", repoerr.Invalid(fmt.Sprintf("A valid %s must be provided.", label))
	}
	return value, nil
}
