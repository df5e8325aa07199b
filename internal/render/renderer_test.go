package render

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopResult(t *testing.T) {
	boom := errors.New("boom")

	assert.NoError(t, LoopResult(nil))
	assert.NoError(t, LoopResult(ErrQuit))
	assert.NoError(t, LoopResult(fmt.Errorf("title screen: %w", ErrQuit)))
	assert.ErrorIs(t, LoopResult(boom), boom)
}
