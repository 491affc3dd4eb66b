package memory

import (
	"time"

	"creative-critique-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository tracks active upload sessions in memory. It is advisory
// only: the files table is the source of truth, the cache just lets the
// upload endpoint answer "how many files so far" without a count query.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Upload sessions are short lived; an hour of inactivity means the
	// client abandoned the upload flow.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.UploadSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.UploadSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.UploadSession), true
	}
	return nil, false
}

func (r *SessionRepository) Touch(sessionID, userID string) *store.UploadSession {
	sess, found := r.Get(sessionID)
	if !found {
		sess = &store.UploadSession{ID: sessionID, UserID: userID}
	}
	sess.FileCount++
	sess.LastUploadAt = time.Now()
	r.Save(sess)
	return sess
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
