// Package services exposes the entity operations behind the HTTP surface.
//
// Every method returns a result.Result so handlers never inspect raw errors:
// a missing row becomes not-found, an ownership mismatch becomes unauthorized,
// and anything unexpected is logged and reported as a generic internal error.
package services

import (
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/result"
)

// DeleteAuditor records deletions. A nil auditor disables recording.
type DeleteAuditor interface {
	LogDelete(userID uint, entityType string, entityID uint, entityName string)
}

func failInternal[T any](log logrus.FieldLogger, err error, op string) result.Result[T] {
	log.WithError(err).WithField("operation", op).Error("Store operation failed")
	return result.Internal[T]()
}
