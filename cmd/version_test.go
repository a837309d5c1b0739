package cmd

import (
	"bytes"
	"fmt"
	"github.com/Halsjsko/BobTheBot/bob"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	originalVersion := bob.Version
	originalCommitSHA := bob.CommitSHA
	originalBuildTime := bob.BuildTime

	t.Cleanup(
		func() {
			bob.Version = originalVersion
			bob.CommitSHA = originalCommitSHA
			bob.BuildTime = originalBuildTime
			versionCmd.SetOut(nil)
		},
	)

	bob.Version = "1.0.0"
	bob.CommitSHA = "abc123"
	bob.BuildTime = "2023-10-01T12:00:00Z"

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	expected := fmt.Sprintf(
		"version=%s commit=%s built: %s\n",
		bob.Version,
		bob.CommitSHA,
		bob.BuildTime,
	)
	assert.Equal(t, expected, out.String())
}
