package decoder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/stream"
	"github.com/yaklabco/mdstream/pkg/token"
)

// upper emits one Word per chunk.
type upper struct {
	line  int
	ended bool
}

func (u *upper) Data(chunk string, out decoder.Emitter) {
	u.line++
	out.Emit(token.Must(token.NewWord(chunk, u.line, 1)))
}

func (u *upper) End(out decoder.Emitter) {
	u.ended = true
}

func texts(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text()
	}
	return out
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestDecoderLifecycle(t *testing.T) {
	t.Parallel()

	dec := decoder.New[string](stream.FromSlice([]string{"a", "b"}), &upper{})
	assert.Equal(t, decoder.NotStarted, dec.State())

	tokens, err := dec.ConsumeAll(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, texts(tokens))
	assert.Equal(t, decoder.Ended, dec.State())

	require.ErrorIs(t, dec.Start(), decoder.ErrAlreadyEnded)
	require.NoError(t, dec.Settled(testContext(t)))
}

func TestDecoderStartTwice(t *testing.T) {
	t.Parallel()

	input := stream.New[string]()
	dec := decoder.New[string](input, &upper{})

	require.NoError(t, dec.Start())
	assert.Equal(t, decoder.Running, dec.State())
	require.ErrorIs(t, dec.Start(), decoder.ErrAlreadyStarted)

	dec.Dispose()
	assert.Equal(t, decoder.Disposed, dec.State())
	require.ErrorIs(t, dec.Start(), decoder.ErrAlreadyDisposed)
}

func TestDecoderDispose(t *testing.T) {
	t.Parallel()

	input := stream.New[string]()
	handler := &upper{}
	dec := decoder.New[string](input, handler)

	var got []string
	dec.Subscribe(stream.HandlerFuncs[token.Token]{
		Data: func(tok token.Token) { got = append(got, tok.Text()) },
	})

	require.NoError(t, input.Write("a"))
	dec.Dispose()
	dec.Dispose()
	require.NoError(t, input.Write("b"))
	require.NoError(t, input.End())

	assert.Equal(t, []string{"a"}, got)
	assert.False(t, handler.ended, "handler must not see the end after dispose")
	require.NoError(t, dec.Settled(testContext(t)))
}

func TestDecoderDisposePropagatesUpstream(t *testing.T) {
	t.Parallel()

	inner := decoder.New[string](stream.New[string](), &upper{})
	outer := decoder.New[token.Token](inner, decoder.NewSpeculative(func(token.Token) decoder.Parser { return nil }))

	require.NoError(t, outer.Start())
	assert.Equal(t, decoder.Running, inner.State(), "starting the outer decoder starts the chain")

	outer.Dispose()
	assert.Equal(t, decoder.Disposed, inner.State())
}

func TestDecoderForwardsErrors(t *testing.T) {
	t.Parallel()

	input := stream.New[string]()
	dec := decoder.New[string](input, &upper{})
	require.NoError(t, input.Write("a"))
	boom := errors.New("boom")
	require.NoError(t, input.Error(boom))

	tokens, err := dec.ConsumeAll(testContext(t))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, texts(tokens))
	require.ErrorIs(t, dec.Settled(testContext(t)), boom)
}

func TestConsumptionModesAgree(t *testing.T) {
	t.Parallel()

	chunks := []string{"one", "two", "three"}
	newDecoder := func() *decoder.Decoder[string] {
		return decoder.New[string](stream.FromSlice(chunks), &upper{})
	}

	bulk, err := newDecoder().ConsumeAll(testContext(t))
	require.NoError(t, err)

	var pulled []token.Token
	for tok, err := range newDecoder().Tokens(testContext(t)) {
		require.NoError(t, err)
		pulled = append(pulled, tok)
	}

	var pushed []token.Token
	dec := newDecoder()
	dec.Subscribe(stream.HandlerFuncs[token.Token]{
		Data: func(tok token.Token) { pushed = append(pushed, tok) },
	})
	require.NoError(t, dec.Settled(testContext(t)))

	assert.True(t, token.EqualSlices(bulk, pulled))
	assert.True(t, token.EqualSlices(bulk, pushed))
}

func TestTokensBreakDisposes(t *testing.T) {
	t.Parallel()

	dec := decoder.New[string](stream.FromSlice([]string{"a", "b", "c"}), &upper{})
	for tok, err := range dec.Tokens(testContext(t)) {
		require.NoError(t, err)
		assert.Equal(t, "a", tok.Text())
		break
	}
	assert.Equal(t, decoder.Disposed, dec.State())
}

func TestTokensContextCancelled(t *testing.T) {
	t.Parallel()

	dec := decoder.New[string](stream.New[string](), &upper{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var errs []error
	for _, err := range dec.Tokens(ctx) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], context.Canceled)
	assert.Equal(t, decoder.Disposed, dec.State())
}
