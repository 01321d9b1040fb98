package favorite

import (
	"github.com/m04kA/companion-booking/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
