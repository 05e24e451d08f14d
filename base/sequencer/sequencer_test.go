package sequencer

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heritage-x/goapi/base/ctx"
)

func TestDoReturnsFnError(t *testing.T) {
	s := New()
	want := errors.New("boom")
	err := s.Do(ctx.Background(), func() error { return want })
	assert.ErrorIs(t, err, want)
}

func TestDoSerializes(t *testing.T) {
	s := New()
	c := ctx.Background()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(c, func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}
