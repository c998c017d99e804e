package storeconfig

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marineStore = `
id: marine
name: Marine Navigation & Monitoring
description: Curated marine applications
filters:
  include_tags:
    - field::marine
  include_origins: []
category_metadata:
  - id: navigation
    label: Navigation
    icon: compass
    description: Chartplotters and routing
  - id: monitoring
    label: Monitoring
  - id: communication
    label: Communication
    icon: null
`

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(marineStore), "store/marine.yaml")
	require.NoError(t, err)

	assert.Equal(t, "marine", cfg.ID)
	assert.Equal(t, "store/marine.yaml", cfg.Path)
	assert.Equal(t, []string{"field::marine"}, cfg.Filters.IncludeTags)
	assert.True(t, cfg.HasCategoryMetadata)
	require.Len(t, cfg.CategoryMetadata, 3)
	assert.Equal(t, CategoryMetadata{ID: "navigation", Label: "Navigation", Icon: "compass", Description: "Chartplotters and routing"}, cfg.CategoryMetadata[0])

	ids := cfg.DeclaredCategoryIDs()
	assert.Len(t, ids, 3)
	assert.Contains(t, ids, "communication")
}

func TestParse_WithoutCategoryMetadata(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("id: s\nname: S\ndescription: d\nfilters:\n  include_packages: [foo]\n"), "s.yaml")
	require.NoError(t, err)
	assert.False(t, cfg.HasCategoryMetadata)
	assert.Empty(t, cfg.DeclaredCategoryIDs())
}

func TestParse_LegacyFields(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"section_metadata", "custom_sections"} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()
			// Rejected regardless of the rest of the document being valid.
			doc := marineStore + key + ":\n  - id: old\n"
			_, err := Parse([]byte(doc), "store/marine.yaml")

			var de *DeprecatedFieldError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, key, de.Field)
			assert.Contains(t, err.Error(), "category_metadata")
		})
	}

	// Even an otherwise empty document fails on the legacy key first.
	_, err := Parse([]byte("section_metadata: {}\n"), "x.yaml")
	var de *DeprecatedFieldError
	assert.ErrorAs(t, err, &de)
}

func TestParse_StructuralErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		doc   string
		field string
	}{
		"missing id":          {doc: "name: S\ndescription: d\nfilters: {include_tags: [a]}\n", field: "id"},
		"missing filters":     {doc: "id: s\nname: S\ndescription: d\n", field: "filters"},
		"filters not mapping": {doc: "id: s\nname: S\ndescription: d\nfilters: [a]\n", field: "filters"},
		"filter not list":     {doc: "id: s\nname: S\ndescription: d\nfilters: {include_tags: a}\n", field: "filters.include_tags"},
		"filter item type":    {doc: "id: s\nname: S\ndescription: d\nfilters: {include_tags: [{a: b}]}\n", field: "filters.include_tags[0]"},
		"numeric name":        {doc: "id: s\nname: 5\ndescription: d\nfilters: {include_tags: [a]}\n", field: "name"},
		"empty id":            {doc: "id: \"\"\nname: S\ndescription: d\nfilters: {include_tags: [a]}\n", field: "id"},
		"metadata not list":   {doc: "id: s\nname: S\ndescription: d\nfilters: {include_tags: [a]}\ncategory_metadata: {}\n", field: "category_metadata"},
		"empty document":      {doc: "", field: "id"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.doc), "s.yaml")

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestParse_MetadataErrors(t *testing.T) {
	t.Parallel()

	base := "id: s\nname: S\ndescription: d\nfilters: {include_tags: [a]}\ncategory_metadata:\n"
	tests := map[string]struct {
		items string
		index int
		field string
	}{
		"missing id":         {items: "  - label: L\n", field: "id"},
		"missing label":      {items: "  - id: nav\n", field: "label"},
		"empty label":        {items: "  - id: nav\n    label: \"\"\n", field: "label"},
		"numeric id":         {items: "  - id: 7\n    label: L\n", field: "id"},
		"icon not string":    {items: "  - id: nav\n    label: L\n    icon: [a]\n", field: "icon"},
		"description number": {items: "  - id: a\n    label: A\n  - id: nav\n    label: L\n    description: 3\n", index: 1, field: "description"},
		"scalar entry":       {items: "  - nav\n", field: "id"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(base+tt.items), "s.yaml")

			var me *MetadataError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, tt.index, me.Index)
			assert.Equal(t, tt.field, me.Field)
		})
	}
}

func TestParse_DuplicateCategoryIDs(t *testing.T) {
	t.Parallel()

	doc := "id: s\nname: S\ndescription: d\nfilters: {include_tags: [a]}\ncategory_metadata:\n  - {id: nav, label: A}\n  - {id: nav, label: B}\n"
	_, err := Parse([]byte(doc), "s.yaml")

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "category_metadata", fe.Field)
	assert.Contains(t, fe.Message, "nav")
}

func TestParse_VacuousFilters(t *testing.T) {
	t.Parallel()

	docs := []string{
		"id: s\nname: S\ndescription: d\nfilters: {}\n",
		"id: s\nname: S\ndescription: d\nfilters:\n  include_tags: []\n  include_origins: null\n  include_sections: []\n  include_packages: []\n",
	}
	for _, doc := range docs {
		_, err := Parse([]byte(doc), "s.yaml")
		assert.True(t, errors.Is(err, ErrVacuousFilter), "got %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "store/marine.yaml", []byte(marineStore), 0o644))

	cfg, err := Load(fs, "store/marine.yaml")
	require.NoError(t, err)
	assert.Equal(t, "marine", cfg.ID)

	_, err = Load(fs, "store/missing.yaml")
	assert.Error(t, err)
}
