package doctor

import "github.com/hospadmin/hospadmin/internal/platform/apperr"

var ErrNotFound = apperr.New(apperr.NotFound, "doctor not found")
