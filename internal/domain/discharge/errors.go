package discharge

import "github.com/hospadmin/hospadmin/internal/platform/apperr"

var ErrNotFound = apperr.New(apperr.NotFound, "discharge not found")
