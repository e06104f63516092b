package database

import "time"

// SetRetryDelay подменяет паузу между попытками подключения на время теста
func SetRetryDelay(d time.Duration) (restore func()) {
	prev := retryDelay
	retryDelay = d
	return func() { retryDelay = prev }
}
