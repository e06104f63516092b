package repository

import (
	"context"
	"time"

	"github.com/company-directory-api/internal/domain"
)

// owner - сущность, сохраняющая дочерние сущности вместе с собой
type owner interface {
	Owned() []any
}

// AuditTimestamps проставляет Created и Modified всем сущностям с поддержкой аудита.
// Новым сущностям (и их новым дочерним) - обе метки, изменённым - только Modified.
func AuditTimestamps(now func() time.Time) SaveHook {
	return func(_ context.Context, entries []Entry) error {
		ts := now().UTC()
		for _, e := range entries {
			switch e.State {
			case Added:
				stampNew(e.Entity, ts)
			case Modified:
				if a, ok := e.Entity.(domain.Auditable); ok {
					a.SetModified(ts)
				}
			}
		}
		return nil
	}
}

func stampNew(entity any, ts time.Time) {
	if a, ok := entity.(domain.Auditable); ok {
		a.SetCreated(ts)
		a.SetModified(ts)
	}
	o, ok := entity.(owner)
	if !ok {
		return
	}
	for _, child := range o.Owned() {
		if e, ok := child.(domain.Entity); ok && e.PrimaryKey() != 0 {
			continue
		}
		stampNew(child, ts)
	}
}
