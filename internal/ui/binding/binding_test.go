package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextInputEmitsFullText(t *testing.T) {
	in := NewTextInput(KeywordID)
	var got []string
	in.Changes().Subscribe(func(s string) { got = append(got, s) })

	in.Set("r")
	in.Set("re")
	assert.Equal(t, []string{"r", "re"}, got)
	assert.Equal(t, "re", in.Value())
}

func TestButtonClicks(t *testing.T) {
	b := NewButton(SearchID)
	clicks := 0
	sub := b.Clicks().Subscribe(func(struct{}) { clicks++ })

	b.Click()
	b.Click()
	sub.Unsubscribe()
	b.Click()
	assert.Equal(t, 2, clicks)
}

func TestSelectCycleWraps(t *testing.T) {
	p := NewPage([]int{10, 30, 50, 100}, 50)
	var got []string
	p.PerPage.Selections().Subscribe(func(s string) { got = append(got, s) })

	p.PerPage.Cycle()
	p.PerPage.Cycle()
	p.PerPage.Choose("abc")
	p.PerPage.Cycle()

	assert.Equal(t, []string{"100", "10", "abc", "10"}, got)
}

func TestPageSources(t *testing.T) {
	p := NewPage([]int{10}, 10)
	src := p.Sources()
	assert.Same(t, p.Keyword, src.Keyword)
	assert.Same(t, p.NextPage, src.NextPage)
	assert.Equal(t, []string{"10"}, p.PerPage.Options())
}
