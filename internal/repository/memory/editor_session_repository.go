package memory

import (
	"time"

	"template-builder-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// EditorSessionRepository keeps open editor sessions in process memory.
// Every successful Get pushes the expiry forward.
type EditorSessionRepository struct {
	cache *cache.Cache
}

func NewEditorSessionRepository(ttl, cleanupInterval time.Duration) *EditorSessionRepository {
	c := cache.New(ttl, cleanupInterval)
	return &EditorSessionRepository{
		cache: c,
	}
}

// OnEvicted registers fn to run when a session expires or is deleted
func (r *EditorSessionRepository) OnEvicted(fn func(session *entity.EditorSession)) {
	r.cache.OnEvicted(func(_ string, v interface{}) {
		if s, ok := v.(*entity.EditorSession); ok {
			fn(s)
		}
	})
}

func (r *EditorSessionRepository) Save(session *entity.EditorSession) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *EditorSessionRepository) Get(sessionId uuid.UUID) (*entity.EditorSession, bool) {
	x, found := r.cache.Get(sessionId.String())
	if !found {
		return nil, false
	}
	session := x.(*entity.EditorSession)
	r.cache.Set(sessionId.String(), session, cache.DefaultExpiration)
	return session, true
}

func (r *EditorSessionRepository) Delete(sessionId uuid.UUID) {
	r.cache.Delete(sessionId.String())
}

func (r *EditorSessionRepository) Count() int {
	return r.cache.ItemCount()
}
