package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recLayer struct {
	name    string
	handled bool
	log     *[]string
}

func (l *recLayer) OnAttach(*Engine)          { *l.log = append(*l.log, "attach "+l.name) }
func (l *recLayer) OnDetach(*Engine)          { *l.log = append(*l.log, "detach "+l.name) }
func (l *recLayer) OnUpdate(*Engine, float64) {}
func (l *recLayer) OnRender(*Engine, float64) {}
func (l *recLayer) OnEvent(_ *Engine, _ Event) bool {
	*l.log = append(*l.log, "event "+l.name)
	return l.handled
}

func TestLayerStackEventsTopDown(t *testing.T) {
	var log []string
	var ls LayerStack
	e := &Engine{}
	ls.Push(e, &recLayer{name: "bottom", log: &log})
	ls.Push(e, &recLayer{name: "top", handled: true, log: &log})
	assert.Equal(t, 2, ls.Len())

	ls.ForEachReverse(func(l Layer) bool { return l.OnEvent(e, EventCloseRequested{}) })
	assert.Equal(t, []string{"attach bottom", "attach top", "event top"}, log)

	l, ok := ls.Pop(e)
	assert.True(t, ok)
	assert.Equal(t, "top", l.(*recLayer).name)
	assert.Equal(t, "detach top", log[len(log)-1])
}
