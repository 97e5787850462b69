package mock

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/poiesic/sumry/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGenerator_DefaultBehavior(t *testing.T) {
	m := NewMockGenerator()
	req := ai.Request{Messages: []ai.Message{ai.UserMessage("hello")}}

	first, err := m.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := m.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "generated-")
	assert.Equal(t, 2, m.CallCount())
}

func TestMockGenerator_EmptyRequest(t *testing.T) {
	m := NewMockGenerator()

	_, err := m.Generate(context.Background(), ai.Request{})
	assert.ErrorIs(t, err, ai.ErrEmptyMessages)
}

func TestMockGenerator_CustomFunc(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockGenerator().WithGenerateFunc(func(ctx context.Context, req ai.Request) (string, error) {
		return "", boom
	})

	_, err := m.Generate(context.Background(), ai.Request{Messages: []ai.Message{ai.UserMessage("x")}})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.CallCount())
}

func TestMockGenerator_RecordsRequests(t *testing.T) {
	m := NewMockGenerator()
	msgs := []ai.Message{ai.SystemMessage("sys"), ai.UserMessage("user")}

	_, err := m.Generate(context.Background(), ai.Request{Model: "m", Messages: msgs})
	require.NoError(t, err)

	// Mutating the caller's slice must not change the recording
	msgs[1].Content = "changed"

	reqs := m.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "m", reqs[0].Model)
	assert.Equal(t, "user", reqs[0].Messages[1].Content)
}

func TestMockGenerator_Concurrent(t *testing.T) {
	m := NewMockGenerator()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Generate(context.Background(), ai.Request{Messages: []ai.Message{ai.UserMessage("x")}})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, m.CallCount())
}

func TestMockGenerator_Reset(t *testing.T) {
	m := NewMockGenerator().WithGenerateFunc(func(ctx context.Context, req ai.Request) (string, error) {
		return "custom", nil
	})
	_, _ = m.Generate(context.Background(), ai.Request{Messages: []ai.Message{ai.UserMessage("x")}})

	m.Reset()

	assert.Equal(t, 0, m.CallCount())
	out, err := m.Generate(context.Background(), ai.Request{Messages: []ai.Message{ai.UserMessage("x")}})
	require.NoError(t, err)
	assert.NotEqual(t, "custom", out)
}
