package admission

import "github.com/hospadmin/hospadmin/internal/platform/apperr"

var ErrNotFound = apperr.New(apperr.NotFound, "admission not found")
