package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider("tok")

	token, err := p.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.True(t, p.IsAuthenticated())
}

func TestNullProvider(t *testing.T) {
	p := NewNullProvider()

	token, err := p.GetToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.False(t, p.IsAuthenticated())
}
