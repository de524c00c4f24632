package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/panes/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestTranslateKey(t *testing.T) {
	assert.Equal(t, core.KeyEnter, translateKey(glfw.KeyKPEnter))
	assert.Equal(t, core.KeyBackspace, translateKey(glfw.KeyBackspace))
	assert.Equal(t, core.KeyUnknown, translateKey(glfw.KeyF12))
}

func TestTranslateMods(t *testing.T) {
	assert.Equal(t, core.ModCtrl|core.ModShift, translateMods(glfw.ModControl|glfw.ModShift))
	assert.Equal(t, core.ModNone, translateMods(0))
}

func TestTranslateButton(t *testing.T) {
	b, ok := translateButton(glfw.MouseButtonRight)
	assert.True(t, ok)
	assert.Equal(t, core.MouseRight, b)
	_, ok = translateButton(glfw.MouseButton4)
	assert.False(t, ok)
}
