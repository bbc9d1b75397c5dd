package llmclient

import (
	"context"
	"strings"
	"time"
)

// MockClient replays a canned completion so the pipeline can be exercised
// without spending model credits.
type MockClient struct {
	Completion string
	ChunkSize  int
	Delay      time.Duration
}

func NewMockClient() *MockClient {
	return &MockClient{Completion: mockCompletion, ChunkSize: 5, Delay: 10 * time.Millisecond}
}

func (m *MockClient) Name() string { return "Mock" }

func (m *MockClient) Stream(ctx context.Context, _ []Message, onChunk func(chunk string)) (string, error) {
	size := m.ChunkSize
	if size <= 0 {
		size = len(m.Completion)
	}
	var full strings.Builder
	for i := 0; i < len(m.Completion); i += size {
		end := min(i+size, len(m.Completion))
		chunk := m.Completion[i:end]
		full.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
		if m.Delay > 0 {
			select {
			case <-ctx.Done():
				return full.String(), ctx.Err()
			case <-time.After(m.Delay):
			}
		}
	}
	return full.String(), nil
}

const mockCompletion = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Product Page</title>
  <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50">
  <header class="flex items-center justify-between p-4 bg-white shadow">
    <img src="https://placehold.co/120x40" alt="Minimal black wordmark logo reading ACME on white">
    <nav class="space-x-4 text-sm"><a href="#">Shop</a><a href="#">About</a><a href="#">Contact</a></nav>
  </header>
  <main class="max-w-5xl mx-auto p-6 grid grid-cols-2 gap-6">
    <img src="https://placehold.co/480x480" alt="Studio photo of a white ceramic coffee mug on a wooden table">
    <section>
      <h1 class="text-3xl font-bold">Everyday Mug</h1>
      <p class="mt-2 text-gray-600">Hand-glazed stoneware, 350ml.</p>
      <button class="mt-4 px-4 py-2 bg-black text-white rounded">Add to cart</button>
    </section>
  </main>
</body>
</html>`
