package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bCtx "github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/service/cache/provider/primitive"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSet(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()

	svc := New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	})

	var out payload
	req.Equal(ErrNotFound, svc.Get(c, "k", &out))

	req.NoError(svc.Set(c, "k", &payload{Name: "amphora", Count: 3}))
	req.NoError(svc.Get(c, "k", &out))
	req.Equal("amphora", out.Name)
	req.Equal(3, out.Count)

	req.NoError(svc.Del(c, "k"))
	req.Equal(ErrNotFound, svc.Get(c, "k", &out))
}

func TestGetByFunc(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()

	svc := New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	})

	calls := 0
	getter := func() (interface{}, error) {
		calls++
		return &payload{Name: "krater", Count: calls}, nil
	}

	var out payload
	req.NoError(svc.GetByFunc(c, "k", &out, getter))
	req.Equal(1, out.Count)

	// second read must come from cache
	req.NoError(svc.GetByFunc(c, "k", &out, getter))
	req.Equal(1, out.Count)
	req.Equal(1, calls)
}
