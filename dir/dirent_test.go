package dir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobertReece/os-project3-fscheck/common"
)

func TestDirentRoundTrip(t *testing.T) {
	assert := assert.New(t)
	de, err := MkDirent(7, "README")
	require.NoError(t, err)

	b := de.Encode()
	assert.Equal(int(common.DIRENTSZ), len(b))
	assert.Equal([]byte{7, 0}, b[0:2])

	got := Decode(b)
	assert.Equal(de, got)
	assert.Equal("README", got.NameString())
	assert.False(got.IsDot())
	assert.False(got.IsEmpty())
}

func TestDots(t *testing.T) {
	assert := assert.New(t)
	dot, _ := MkDirent(1, ".")
	dotdot, _ := MkDirent(1, "..")
	assert.True(dot.IsDot())
	assert.False(dot.IsDotDot())
	assert.True(dotdot.IsDotDot())
	assert.False(dotdot.IsDot())

	hidden, _ := MkDirent(3, ".profile")
	assert.False(hidden.IsDot())
	assert.False(hidden.IsDotDot())
}

func TestFullLengthName(t *testing.T) {
	de, err := MkDirent(2, "abcdefghijklmn")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghijklmn", Decode(de.Encode()).NameString(), "no NUL terminator")
}

func TestBadNames(t *testing.T) {
	_, err := MkDirent(2, "")
	assert.Error(t, err)
	_, err = MkDirent(2, "abcdefghijklmno")
	assert.Error(t, err)
}

func TestEmptySlot(t *testing.T) {
	de := Decode(make([]byte, common.DIRENTSZ))
	assert.True(t, de.IsEmpty())
	assert.Equal(t, "", de.NameString())
}
