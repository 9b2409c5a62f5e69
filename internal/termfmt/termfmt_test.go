package termfmt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyles(t *testing.T) {
	SetEnabled(true)
	t.Cleanup(func() { SetEnabled(true) })

	assert.Equal(t, "\x1b[1mhi\x1b[0m", fmt.Sprintf("%s", Bold().V("hi")))
	assert.Equal(t, "\x1b[31m\x1b[1mhi\x1b[0m\x1b[0m", fmt.Sprintf("%s", Fg(Red).Bold().V("hi")))
	assert.Equal(t, "\x1b[91mx\x1b[0m", fmt.Sprintf("%s", Fg(LightRed).V("x")))
	assert.Equal(t, "\x1b]8;;file:///tmp/a\x1b\\a\x1b]8;;\x1b\\", fmt.Sprintf("%s", Linked("file:///tmp/a").V("a")))
}

func TestVerbsAndWidth(t *testing.T) {
	SetEnabled(false)
	t.Cleanup(func() { SetEnabled(true) })

	assert.Equal(t, "  42", fmt.Sprintf("%4d", Bold().V(42)))
	assert.Equal(t, "ab  |", fmt.Sprintf("%-4s|", Bold().V("ab")))
}

func TestDisabledAndUnprintable(t *testing.T) {
	SetEnabled(false)
	t.Cleanup(func() { SetEnabled(true) })

	assert.Equal(t, "plain", fmt.Sprintf("%s", Fg(Green).Bold().V("plain")))
	assert.Equal(t, "nobell", fmt.Sprintf("%s", V("no\abell")))
}

func TestStylesDontShareEscapes(t *testing.T) {
	SetEnabled(true)
	t.Cleanup(func() { SetEnabled(true) })

	base := Bold()
	red := base.Fg(Red)
	green := base.Fg(Green)

	assert.Equal(t, "\x1b[1m\x1b[31mr\x1b[0m\x1b[0m", fmt.Sprintf("%s", red.V("r")))
	assert.Equal(t, "\x1b[1m\x1b[32mg\x1b[0m\x1b[0m", fmt.Sprintf("%s", green.V("g")))
}
