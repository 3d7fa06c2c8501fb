package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reposcout/internal/stream"
	"reposcout/internal/ui/binding"
)

type countingInput struct {
	*binding.TextInput
	listeners int
	detached  int
}

func (c *countingInput) Changes() stream.Observable[string] {
	return stream.Create(func(o stream.Observer[string], sub *stream.Subscription) {
		c.listeners++
		inner := c.TextInput.Changes().SubscribeWith(o)
		sub.Add(inner.Unsubscribe)
		sub.Add(func() { c.detached++ })
	})
}

func TestKeywordStartsEmpty(t *testing.T) {
	svc := NewService(binding.NewTextInput(binding.KeywordID))

	var got []string
	svc.Keywords().Subscribe(func(k string) { got = append(got, k) })
	assert.Equal(t, []string{""}, got)
	assert.Equal(t, "", svc.Current())
}

func TestLateSubscriberGetsCurrentKeyword(t *testing.T) {
	in := binding.NewTextInput(binding.KeywordID)
	svc := NewService(in)

	in.Set("r")
	in.Set("react")

	var got []string
	svc.Keywords().Subscribe(func(k string) { got = append(got, k) })
	assert.Equal(t, []string{"react"}, got)
	assert.Equal(t, "react", svc.Current())
	assert.Equal(t, 2, svc.Edits())
}

func TestInputListenerAttachedOnce(t *testing.T) {
	in := &countingInput{TextInput: binding.NewTextInput(binding.KeywordID)}
	svc := NewService(in)

	svc.Keywords().Subscribe(func(string) {})
	svc.Keywords().Take(1).Subscribe(func(string) {})
	in.Set("go")

	assert.Equal(t, 1, in.listeners)
	assert.Equal(t, "go", svc.Current())
}

func TestCloseDetachesFromInput(t *testing.T) {
	in := &countingInput{TextInput: binding.NewTextInput(binding.KeywordID)}
	svc := NewService(in)
	in.Set("go")

	svc.Close()
	assert.Equal(t, 1, in.detached)

	in.Set("rust")
	assert.Equal(t, "go", svc.Current())
}
