package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "wrapped: %d", 42)

	assert.Contains(t, wrapped.Error(), "wrapped: 42")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithDetail(t *testing.T) {
	err := WithDetail(New("error"), "detailed information")

	details := GetAllDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "detailed information", details[0])
}

func TestCategorize(t *testing.T) {
	errUnknownSymbol := New("unknown symbol")
	errUnknownFeature := New("unknown feature")

	err := Categorize(Wrapf(errUnknownSymbol, "lookup %q", "x"), ErrNotFound)

	assert.True(t, Is(err, errUnknownSymbol))
	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsConflictError(err))
	// sentinels sharing a category stay distinguishable
	assert.False(t, Is(err, errUnknownFeature))
	assert.Equal(t, `lookup "x": unknown symbol`, err.Error())

	other := Categorize(Wrap(errUnknownFeature, "ctx"), ErrNotFound)
	assert.False(t, Is(other, errUnknownSymbol))
	assert.True(t, IsNotFoundError(Wrap(other, "outer")))

	assert.Nil(t, Categorize(nil, ErrConflict))
}

func TestCategoryHelpersNil(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsInvalidInputError(nil))
	assert.False(t, IsConflictError(nil))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func TestErrorChaining(t *testing.T) {
	base := New("base error")

	err := Wrap(base, "layer 1")
	err = WithHint(err, "helpful hint")
	err = Wrap(err, "layer 2")

	assert.True(t, Is(err, base))
	assert.Contains(t, err.Error(), "layer 2")
	assert.Contains(t, err.Error(), "base error")
	assert.Contains(t, GetAllHints(err), "helpful hint")
}

func ExampleWrap() {
	baseErr := New("unexpected end of input")
	err := Wrap(baseErr, "failed to decode inventory")
	fmt.Println(err)
	// Output: failed to decode inventory: unexpected end of input
}
