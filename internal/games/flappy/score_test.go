package flappy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreKeeper(t *testing.T) {
	var k ScoreKeeper

	k.RegisterPass()
	k.RegisterPass()
	assert.Equal(t, 2, k.Score())
	assert.Equal(t, 0, k.Best(), "best only changes on finalize")

	k.Finalize()
	assert.Equal(t, 2, k.Best())

	k.Reset()
	assert.Equal(t, 0, k.Score())
	assert.Equal(t, 2, k.Best())

	// A lower run never lowers the best
	k.RegisterPass()
	k.Finalize()
	assert.Equal(t, 2, k.Best())

	k.Reset()
	for i := 0; i < 5; i++ {
		k.RegisterPass()
	}
	k.Finalize()
	assert.Equal(t, 5, k.Best())
}
