package testutil_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/testutil"
)

func TestNewFileRepo_StartsEmptyAndLazy(t *testing.T) {
	r, path := testutil.NewFileRepo(t)

	doc := testutil.MustLoad(t, r)
	assert.Empty(t, doc.Parks)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	testutil.MustSave(t, r, domain.NewDocument())
	_, err = os.Stat(path)
	require.NoError(t, err)
}
