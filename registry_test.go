package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryKeepsInsertionOrder(t *testing.T) {
	reg := newRegistry()
	for _, id := range []string{"web", "about", "fun"} {
		require.NoError(t, reg.add(Section{ID: id, Title: id, Body: Fragment(id)}))
	}

	var ids []string
	for _, s := range reg.sections() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"web", "about", "fun"}, ids)
	assert.Equal(t, 3, reg.len())
}

func TestRegistryRejectsDuplicateAndEmptyIDs(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.add(Section{ID: "about", Title: "About"}))

	err := reg.add(Section{ID: "about", Title: "Again"})
	assert.ErrorIs(t, err, errDuplicateSection)

	err = reg.add(Section{Title: "Nameless"})
	assert.Error(t, err)

	assert.Equal(t, 1, reg.len(), "rejected sections are not added")
}

func TestRegistryRender(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.add(Section{ID: "about", Title: "About", Body: Fragment("Hi")}))
	require.NoError(t, reg.add(Section{ID: "empty", Title: "Empty"}))

	out, err := reg.render(newRenderContext(testConf(t), nil, nil))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, renderedSection{ID: "about", Title: "About", Body: "Hi"}, out[0])
	assert.Equal(t, renderedSection{ID: "empty", Title: "Empty", Body: ""}, out[1])
}

func TestSiteContent(t *testing.T) {
	reg, err := siteContent(5)
	require.NoError(t, err)

	var ids []string
	for _, s := range reg.sections() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"about", "projects", "web", "fun", "ctf", "blog"}, ids)
}
