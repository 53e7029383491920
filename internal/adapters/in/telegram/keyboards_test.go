package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYesNoKeyboard(t *testing.T) {
	kb := yesNoKeyboard()

	require.Len(t, kb.Keyboard, 2)
	require.Len(t, kb.Keyboard[0], 1)
	require.Len(t, kb.Keyboard[1], 1)
	assert.Equal(t, "Да", kb.Keyboard[0][0].Text)
	assert.Equal(t, "Нет", kb.Keyboard[1][0].Text)

	assert.True(t, kb.ResizeKeyboard)
	assert.True(t, kb.OneTimeKeyboard)
	assert.Equal(t, "Выберите: Да / Нет", kb.InputFieldPlaceholder)
}

func TestRemoveKeyboard(t *testing.T) {
	kb := removeKeyboard()

	assert.True(t, kb.RemoveKeyboard)
}
