package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	assert.True(t, called, "custom logger was not called")

	// nil installs a no-op.
	SetLogger(nil)
	Logf("test message")
}

func TestStage(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	done := Stage("plan")
	require.Len(t, lines, 1)
	assert.Equal(t, "plan: started", lines[0])

	done()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "plan: done in ")
}
