package cmd

import (
	"bytes"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestPrintRegisteredCommands(t *testing.T) {
	var out bytes.Buffer
	err := printRegisteredCommands(
		&out,
		[]*discordgo.ApplicationCommand{
			{ID: "111", Name: "convert"},
			{ID: "222", Name: "quote"},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "/convert  111\n/quote    222\nregistered 2 commands\n", out.String())
}

func TestRegisterCommandArgs(t *testing.T) {
	resetViper(t)
	_ = captureRootOutput(t, "")

	rootCmd.SetArgs([]string{"register-commands", "extra"})
	assert.Error(t, rootCmd.Execute())
}
