package application

import (
	"context"

	"sdrelay/internal/domain"
)

// --- Mocks ---

type mockLoader struct {
	encoded  string
	err      error
	lastPath string
}

func (m *mockLoader) Load(path string) (string, error) {
	m.lastPath = path
	return m.encoded, m.err
}

// spySynthesisClient は、呼び出し回数と入力を記録するモックです
type spySynthesisClient struct {
	result    *domain.SynthesisResult
	err       error
	calls     int
	lastInput domain.SynthesisInput
}

func (s *spySynthesisClient) Img2Img(ctx context.Context, input domain.SynthesisInput) (*domain.SynthesisResult, error) {
	s.calls++
	s.lastInput = input
	return s.result, s.err
}

type mockStore struct {
	path      string
	err       error
	calls     int
	lastImage string
	lastIndex int
}

func (m *mockStore) SaveEncoded(encoded string, index int) (string, error) {
	m.calls++
	m.lastImage = encoded
	m.lastIndex = index
	return m.path, m.err
}

type mockRelay struct {
	err         error
	calls       int
	lastMessage domain.RelayMessage
}

func (m *mockRelay) Send(ctx context.Context, message domain.RelayMessage) error {
	m.calls++
	m.lastMessage = message
	return m.err
}
