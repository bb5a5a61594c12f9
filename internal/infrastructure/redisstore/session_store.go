package redisstore

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

func stateKey(sid string) string { return "session:state:" + sid }

var beginScript = redis.NewScript(`
local seq = redis.call("HINCRBY", KEYS[1], "seq", 1)
if redis.call("HGET", KEYS[1], "status") ~= "authenticated" then
  redis.call("HSET", KEYS[1], "status", "loading", "loading_until", ARGV[2])
end
redis.call("PEXPIRE", KEYS[1], ARGV[1])
return seq
`)

var commitScript = redis.NewScript(`
local cur = tonumber(redis.call("HGET", KEYS[1], "seq") or "0")
if cur ~= tonumber(ARGV[1]) then
  return 0
end
redis.call("HSET", KEYS[1], "status", "authenticated", "principal", ARGV[2])
redis.call("HDEL", KEYS[1], "loading_until")
redis.call("PEXPIRE", KEYS[1], ARGV[3])
return 1
`)

var abortScript = redis.NewScript(`
local cur = tonumber(redis.call("HGET", KEYS[1], "seq") or "0")
if cur ~= tonumber(ARGV[1]) or redis.call("HGET", KEYS[1], "status") ~= "loading" then
  return 0
end
redis.call("HSET", KEYS[1], "status", "unauthenticated")
redis.call("HDEL", KEYS[1], "loading_until")
return 1
`)

var clearScript = redis.NewScript(`
redis.call("HDEL", KEYS[1], "principal", "loading_until")
redis.call("HSET", KEYS[1], "status", "unauthenticated")
redis.call("HINCRBY", KEYS[1], "seq", 1)
redis.call("PEXPIRE", KEYS[1], ARGV[1])
return 1
`)

const defaultLoadingTimeout = 15 * time.Second

// SessionStore keeps session state in one Redis hash per session id.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration

	// LoadingTimeout bounds how long a state stays loading before readers
	// treat it as stalled.
	LoadingTimeout time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{rdb: rdb, ttl: ttl, LoadingTimeout: defaultLoadingTimeout}
}

func (s *SessionStore) Begin(ctx context.Context, sid string) (int64, error) {
	timeout := s.LoadingTimeout
	if timeout <= 0 {
		timeout = defaultLoadingTimeout
	}
	until := time.Now().Add(timeout).UnixMilli()
	return beginScript.Run(ctx, s.rdb, []string{stateKey(sid)}, s.ttl.Milliseconds(), until).Int64()
}

func (s *SessionStore) Commit(ctx context.Context, sid string, seq int64, p *entity.Principal) (bool, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return false, err
	}
	n, err := commitScript.Run(ctx, s.rdb, []string{stateKey(sid)}, seq, string(b), s.ttl.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *SessionStore) Abort(ctx context.Context, sid string, seq int64) error {
	return abortScript.Run(ctx, s.rdb, []string{stateKey(sid)}, seq).Err()
}

func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	return clearScript.Run(ctx, s.rdb, []string{stateKey(sid)}, s.ttl.Milliseconds()).Err()
}

func (s *SessionStore) Load(ctx context.Context, sid string) (*entity.SessionState, error) {
	data, err := s.rdb.HGetAll(ctx, stateKey(sid)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	st := &entity.SessionState{SessionID: sid, Status: entity.SessionStatus(data["status"])}
	if v := data["seq"]; v != "" {
		st.Seq, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := data["loading_until"]; v != "" && st.Status == entity.SessionLoading {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			st.LoadingUntil = time.UnixMilli(ms)
		}
	}
	if raw := data["principal"]; raw != "" && st.Status == entity.SessionAuthenticated {
		var p entity.Principal
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, err
		}
		st.Principal = &p
	}
	return st, nil
}

var _ repository.SessionStateStore = (*SessionStore)(nil)
