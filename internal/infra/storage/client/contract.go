package client

import "github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
// Транзакция берется из контекста через dbmetrics.GetExecutor
type DBExecutor = dbmetrics.DBExecutor
