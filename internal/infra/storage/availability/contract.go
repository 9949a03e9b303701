package availability

import (
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
)

// DBExecutor переиспользуем интерфейс из dbmetrics: *dbmetrics.DB или транзакция из контекста
type DBExecutor = dbmetrics.DBExecutor
