package repo

import "time"

type TransferFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}
