package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript_Validate(t *testing.T) {
	s, err := Parse("card.rtpl", []byte("<?= shout(name) ?>\n<?= data.title ?>\n<? echo(name) ?>"))
	require.NoError(t, err)

	helpers := funcTable{
		"shout": func(args ...any) (any, error) { return args[0], nil },
	}

	assert.NoError(t, s.Validate([]string{"name"}, helpers))

	err = s.Validate(nil, helpers)
	require.Error(t, err)
	var scriptErr *Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, 1, scriptErr.Line)
	assert.Contains(t, err.Error(), "name")

	err = s.Validate([]string{"name"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shout")
}

func TestScript_ValidateSyntax(t *testing.T) {
	s, err := Parse("bad.rtpl", []byte("ok\n\n<?= 1 + ?>"))
	require.NoError(t, err)

	err = s.Validate(nil, nil)
	require.Error(t, err)
	var scriptErr *Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, 3, scriptErr.Line)
}
