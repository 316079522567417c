package patient

import "github.com/hospadmin/hospadmin/internal/platform/apperr"

var ErrNotFound = apperr.New(apperr.NotFound, "patient not found")
