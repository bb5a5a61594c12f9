package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

// ActivityRecorder appends mutations to the activity log. A failed write is
// logged and never fails the mutation itself.
type ActivityRecorder struct {
	Repo   repo.ActivityRepository
	Logger *logrus.Logger
}

func NewActivityRecorder(r repo.ActivityRepository, logger *logrus.Logger) *ActivityRecorder {
	return &ActivityRecorder{Repo: r, Logger: logger}
}

func (a *ActivityRecorder) Record(ctx context.Context, actor *entity.Principal, act access.Action, res access.Resource, targetID, target string) {
	if a == nil || a.Repo == nil || actor == nil {
		return
	}
	entry := &entity.Activity{
		UserID:      actor.ID,
		ActorName:   actor.DisplayName,
		ActorAvatar: actor.AvatarURL,
		Action:      act,
		Resource:    res,
		TargetID:    targetID,
		Target:      target,
	}
	if err := a.Repo.Record(ctx, entry); err != nil && a.Logger != nil {
		a.Logger.WithError(err).WithFields(logrus.Fields{
			"resource":  string(res),
			"action":    string(act),
			"target_id": targetID,
		}).Warn("record activity failed")
	}
}
