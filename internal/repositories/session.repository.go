package repositories

import (
	"context"
	"errors"
	"registry/internal/database"
	"registry/internal/logger"
	. "registry/internal/models"
	"registry/internal/services"
	"time"

	"gorm.io/gorm"
)

type SessionRepository interface {
	// FindLatestByIdentity returns the most recently active session for the
	// exact (name, mobile) pair, or (nil, nil) when none exists.
	FindLatestByIdentity(ctx context.Context, name, mobile string) (*SubmitterSession, error)
	Create(ctx context.Context, session *SubmitterSession) error
	Touch(ctx context.Context, session *SubmitterSession, at time.Time) error
}

type sessionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSession(db database.DB) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: logger.New("sessionRepository"),
	}
}

func (r *sessionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *sessionRepository) FindLatestByIdentity(
	ctx context.Context,
	name, mobile string,
) (*SubmitterSession, error) {
	log := r.log.Function("FindLatestByIdentity")

	var session SubmitterSession
	err := r.getDB(ctx).
		Where("submitter_name = ? AND submitter_mobile = ?", name, mobile).
		Order("last_active_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to find session by identity", err, "name", name, "mobile", mobile)
	}

	return &session, nil
}

func (r *sessionRepository) Create(ctx context.Context, session *SubmitterSession) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(session).Error; err != nil {
		return log.Err("failed to create submitter session", err, "session", session)
	}

	return nil
}

func (r *sessionRepository) Touch(
	ctx context.Context,
	session *SubmitterSession,
	at time.Time,
) error {
	log := r.log.Function("Touch")

	if err := r.getDB(ctx).
		Model(&SubmitterSession{}).
		Where("id = ?", session.ID).
		Update("last_active_at", at).Error; err != nil {
		return log.Err("failed to touch submitter session", err, "sessionID", session.ID)
	}

	session.LastActiveAt = at

	return nil
}
