package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/sanaguide/internal/tui/ui"
)

func TestNewErrorMsg(t *testing.T) {
	t.Parallel()

	err := errors.New("guide 'x' not found")
	msg, ok := ui.NewErrorMsg(err).(ui.ErrorMsg)

	assert.True(t, ok)
	assert.Equal(t, "guide 'x' not found", msg.Error())
	assert.ErrorIs(t, msg.Err, err)
}

func TestNewStatusMsg(t *testing.T) {
	t.Parallel()

	msg, ok := ui.NewStatusMsg("Details saved").(ui.StatusMsg)

	assert.True(t, ok)
	assert.Equal(t, "Details saved", msg.Message)
}
