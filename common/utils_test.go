package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "fifo", Coalesce("", "fifo"))
	assert.Equal(t, "mailbox", Coalesce("mailbox", "fifo"))
	assert.Equal(t, 3, Coalesce(0, 0, 3))
	assert.Equal(t, 0, Coalesce[int]())
}
