package session

import (
	"context"
	"math/rand"
	"strconv"

	"github.com/rushteam/shopsense/core"
)

// 新用户数值身份的分配区间 [IDLow, IDHigh)。
// 低号段留给离线矩阵已覆盖的老用户。
const (
	IDLow  int64 = 2000
	IDHigh int64 = 100000
)

// Registry 维护登录名到数值身份的映射。
// 首次出现的登录名在注册时随机分配一个区间内的新身份并持久化，
// 之后同名登录始终解析到同一身份。
type Registry struct {
	backend core.Store
	prefix  string

	// Rand 随机源，为空时使用包级默认源
	Rand *rand.Rand
}

// NewRegistry 构建用户名注册表。prefix 为空时用 "user"。
func NewRegistry(backend core.Store, prefix string) *Registry {
	if prefix == "" {
		prefix = "user"
	}
	return &Registry{backend: backend, prefix: prefix}
}

func (r *Registry) nameKey(name string) string {
	return r.prefix + ":name:" + name
}

// Lookup 解析登录名对应的数值身份；未注册时返回 NOT_FOUND。
func (r *Registry) Lookup(ctx context.Context, name string) (int64, error) {
	data, err := r.backend.Get(ctx, r.nameKey(name))
	if core.IsStoreNotFound(err) {
		return 0, core.NewDomainError(core.ModuleSession, core.ErrorCodeNotFound,
			"session: unknown user "+name)
	}
	if err != nil {
		return 0, core.NewDomainError(core.ModuleSession, core.ErrorCodeUnavailable,
			"session: lookup user: "+err.Error())
	}

	id, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, core.NewDomainError(core.ModuleSession, core.ErrorCodeInternalError,
			"session: corrupt user id for "+name)
	}
	return id, nil
}

// Register 解析登录名，未注册时分配新身份并落库。
// 空登录名视为访客，直接返回 GuestUserID。
func (r *Registry) Register(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return core.GuestUserID, nil
	}

	id, err := r.Lookup(ctx, name)
	if err == nil {
		return id, nil
	}
	if !core.IsNotFound(err) {
		return 0, err
	}

	id = r.newID()
	if err := r.backend.Set(ctx, r.nameKey(name), []byte(strconv.FormatInt(id, 10))); err != nil {
		return 0, core.NewDomainError(core.ModuleSession, core.ErrorCodeUnavailable,
			"session: register user: "+err.Error())
	}
	return id, nil
}

func (r *Registry) newID() int64 {
	span := IDHigh - IDLow
	if r.Rand != nil {
		return IDLow + r.Rand.Int63n(span)
	}
	return IDLow + rand.Int63n(span)
}
